package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, product *models.Product) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Product, error)
	Update(ctx context.Context, tx pgx.Tx, product *models.Product) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	List(ctx context.Context, tx pgx.Tx, limit, offset uint64, activeOnly bool) ([]*models.Product, error)
}

type repository struct {
	conn   driver.PostgresPool
	logger *zap.Logger
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger) Repository {
	return &repository{
		conn:   conn,
		logger: logger,
	}
}

const productColumns = `
    id, name, description, active, cost_basis, profit_margin, taxes,
    price_with_margin, final_price, created_at, updated_at`

func (r *repository) Create(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	const query = `
    INSERT INTO products
        (name, description, active, cost_basis, profit_margin, taxes,
         price_with_margin, final_price, created_at, updated_at)
    VALUES
        (@name, @description, @active, @cost_basis, @profit_margin, @taxes,
         @price_with_margin, @final_price, NOW(), NOW())
    RETURNING id
    `

	taxes, err := json.Marshal(product.Taxes)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"name":              product.Name,
		"description":       product.Description,
		"active":            product.Active,
		"cost_basis":        product.CostBasis,
		"profit_margin":     product.ProfitMargin,
		"taxes":             taxes,
		"price_with_margin": product.PriceWithMargin,
		"final_price":       product.FinalPrice,
	}

	if err = tx.QueryRow(ctx, query, args).Scan(&product.ID); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = @id`

	product, err := scanProduct(tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("error getting product", zap.Error(err))
		}
		return nil, err
	}

	return product, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	const query = `
    UPDATE products SET
        name = @name,
        description = @description,
        active = @active,
        cost_basis = @cost_basis,
        profit_margin = @profit_margin,
        taxes = @taxes,
        price_with_margin = @price_with_margin,
        final_price = @final_price,
        updated_at = NOW()
    WHERE id = @id
    `

	taxes, err := json.Marshal(product.Taxes)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"id":                product.ID,
		"name":              product.Name,
		"description":       product.Description,
		"active":            product.Active,
		"cost_basis":        product.CostBasis,
		"profit_margin":     product.ProfitMargin,
		"taxes":             taxes,
		"price_with_margin": product.PriceWithMargin,
		"final_price":       product.FinalPrice,
	}

	if _, err = tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, tx pgx.Tx, limit, offset uint64, activeOnly bool) ([]*models.Product, error) {
	query := `SELECT` + productColumns + `
    FROM products
    WHERE (NOT @active_only OR active)
    ORDER BY id
    LIMIT @limit OFFSET @offset`

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{
		"active_only": activeOnly,
		"limit":       int64(limit),
		"offset":      int64(offset),
	})
	if err != nil {
		r.logger.Error("error listing products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		product models.Product
		taxes   []byte
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Active,
		&product.CostBasis,
		&product.ProfitMargin,
		&taxes,
		&product.PriceWithMargin,
		&product.FinalPrice,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(taxes) > 0 {
		if err = json.Unmarshal(taxes, &product.Taxes); err != nil {
			return nil, fmt.Errorf("failed to decode taxes: %w", err)
		}
	}

	return &product, nil
}

package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, customer *models.Customer) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Customer, error)
	Update(ctx context.Context, tx pgx.Tx, customer *models.Customer) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	List(ctx context.Context, tx pgx.Tx, limit, offset uint64) ([]*models.Customer, error)
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, customer *models.Customer) error {
	const query = `
    INSERT INTO customers (name, email, phone, location, created_at, updated_at)
    VALUES (@name, @email, @phone, @location, NOW(), NOW())
    RETURNING id
    `

	args := pgx.NamedArgs{
		"name":     customer.Name,
		"email":    customer.Email,
		"phone":    customer.Phone,
		"location": customer.Location,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&customer.ID); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Customer, error) {
	const query = `
    SELECT id, name, email, phone, location, created_at, updated_at
    FROM customers WHERE id = @id
    `

	var customer models.Customer
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Location,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("error getting customer", zap.Error(err))
		return nil, err
	}

	return &customer, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, customer *models.Customer) error {
	const query = `
    UPDATE customers SET
        name = @name,
        email = @email,
        phone = @phone,
        location = @location,
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":       customer.ID,
		"name":     customer.Name,
		"email":    customer.Email,
		"phone":    customer.Phone,
		"location": customer.Location,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, tx pgx.Tx, limit, offset uint64) ([]*models.Customer, error) {
	const query = `
    SELECT id, name, email, phone, location, created_at, updated_at
    FROM customers
    ORDER BY id
    LIMIT @limit OFFSET @offset
    `

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{
		"limit":  int64(limit),
		"offset": int64(offset),
	})
	if err != nil {
		r.logger.Error("error listing customers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0, limit)
	for rows.Next() {
		var customer models.Customer
		if err = rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.Location,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}

	return customers, rows.Err()
}

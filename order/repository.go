package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
	"goflare.io/merchant/models/enum"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, order *models.Order) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Order, error)
	Update(ctx context.Context, tx pgx.Tx, order *models.PartialOrder) error
	List(ctx context.Context, tx pgx.Tx, limit, offset uint64, status enum.OrderStatus) ([]*models.Order, error)
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	const query = `
    INSERT INTO orders (customer_id, amount, items, status, created_at, updated_at)
    VALUES (@customer_id, @amount, @items, @status, NOW(), NOW())
    RETURNING id
    `

	args := pgx.NamedArgs{
		"customer_id": order.CustomerID,
		"amount":      order.Amount,
		"items":       order.Items,
		"status":      order.Status,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&order.ID); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Order, error) {
	const query = `
    SELECT id, customer_id, amount, items, status, created_at, updated_at
    FROM orders WHERE id = @id
    `

	var order models.Order
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Amount,
		&order.Items,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("error getting order", zap.Error(err))
		return nil, err
	}

	return &order, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, order *models.PartialOrder) error {
	const query = `
    UPDATE orders SET
        customer_id = COALESCE(@customer_id, orders.customer_id),
        amount = COALESCE(@amount, orders.amount),
        items = COALESCE(@items, orders.items),
        status = COALESCE(@status, orders.status),
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":          order.ID,
		"customer_id": order.CustomerID,
		"amount":      order.Amount,
		"items":       order.Items,
		"status":      order.Status,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, tx pgx.Tx, limit, offset uint64, status enum.OrderStatus) ([]*models.Order, error) {
	const query = `
    SELECT id, customer_id, amount, items, status, created_at, updated_at
    FROM orders
    WHERE (@status = '' OR status = @status)
    ORDER BY created_at DESC
    LIMIT @limit OFFSET @offset
    `

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{
		"status": string(status),
		"limit":  int64(limit),
		"offset": int64(offset),
	})
	if err != nil {
		r.logger.Error("error listing orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0, limit)
	for rows.Next() {
		var order models.Order
		if err = rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.Amount,
			&order.Items,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}

package discount

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
	Create(ctx context.Context, tx pgx.Tx, discount *models.Discount) error
	GetByCode(ctx context.Context, tx pgx.Tx, code string) (*models.Discount, error)
	Update(ctx context.Context, tx pgx.Tx, discount *models.PartialDiscount) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	List(ctx context.Context, tx pgx.Tx, limit, offset uint64) ([]*models.Discount, error)
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, discount *models.Discount) error {
	const query = `
    INSERT INTO discounts (code, type, value, usage_limit, active, starts_at, ends_at, created_at, updated_at)
    VALUES (@code, @type, @value, @usage_limit, @active, @starts_at, @ends_at, NOW(), NOW())
    RETURNING id
    `

	args := pgx.NamedArgs{
		"code":        discount.Code,
		"type":        discount.Type,
		"value":       discount.Value,
		"usage_limit": discount.UsageLimit,
		"active":      discount.Active,
		"starts_at":   discount.StartsAt,
		"ends_at":     discount.EndsAt,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&discount.ID); err != nil {
		return fmt.Errorf("failed to insert discount: %w", err)
	}

	return nil
}

func (r *repository) GetByCode(ctx context.Context, tx pgx.Tx, code string) (*models.Discount, error) {
	const query = `
    SELECT id, code, type, value, usage_limit, active, starts_at, ends_at, created_at, updated_at
    FROM discounts WHERE code = @code
    `

	var discount models.Discount
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"code": code}).Scan(
		&discount.ID,
		&discount.Code,
		&discount.Type,
		&discount.Value,
		&discount.UsageLimit,
		&discount.Active,
		&discount.StartsAt,
		&discount.EndsAt,
		&discount.CreatedAt,
		&discount.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("error getting discount", zap.Error(err))
		return nil, err
	}

	return &discount, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, discount *models.PartialDiscount) error {
	const query = `
    UPDATE discounts SET
        code = COALESCE(@code, discounts.code),
        type = COALESCE(@type, discounts.type),
        value = COALESCE(@value, discounts.value),
        usage_limit = COALESCE(@usage_limit, discounts.usage_limit),
        active = COALESCE(@active, discounts.active),
        starts_at = COALESCE(@starts_at, discounts.starts_at),
        ends_at = COALESCE(@ends_at, discounts.ends_at),
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":          discount.ID,
		"code":        discount.Code,
		"type":        discount.Type,
		"value":       discount.Value,
		"usage_limit": discount.UsageLimit,
		"active":      discount.Active,
		"starts_at":   discount.StartsAt,
		"ends_at":     discount.EndsAt,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update discount: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM discounts WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, tx pgx.Tx, limit, offset uint64) ([]*models.Discount, error) {
	const query = `
    SELECT id, code, type, value, usage_limit, active, starts_at, ends_at, created_at, updated_at
    FROM discounts
    ORDER BY id
    LIMIT @limit OFFSET @offset
    `

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{
		"limit":  int64(limit),
		"offset": int64(offset),
	})
	if err != nil {
		r.logger.Error("error listing discounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	discounts := make([]*models.Discount, 0, limit)
	for rows.Next() {
		var discount models.Discount
		if err = rows.Scan(
			&discount.ID,
			&discount.Code,
			&discount.Type,
			&discount.Value,
			&discount.UsageLimit,
			&discount.Active,
			&discount.StartsAt,
			&discount.EndsAt,
			&discount.CreatedAt,
			&discount.UpdatedAt,
		); err != nil {
			return nil, err
		}
		discounts = append(discounts, &discount)
	}

	return discounts, rows.Err()
}

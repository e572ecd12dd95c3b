package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

var _ Repository = (*repository)(nil)

// Repository is the user-record store the session manager runs against.
// Lookups return (nil, nil) when no record matches.
type Repository interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error
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

func (r *repository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	const query = `
    SELECT id, email, username, password_hash, refresh_token, created_at, updated_at
    FROM users
    WHERE email = @email OR username = @username
    `

	return r.scanOne(ctx, query, pgx.NamedArgs{
		"email":    email,
		"username": username,
	})
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `
    SELECT id, email, username, password_hash, refresh_token, created_at, updated_at
    FROM users
    WHERE id = @id
    `

	return r.scanOne(ctx, query, pgx.NamedArgs{"id": id})
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	const query = `
    INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
    VALUES (@id, @email, @username, @password_hash, NOW(), NOW())
    `

	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
	}

	if _, err := r.conn.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateRefreshToken overwrites the stored refresh token; passing nil clears
// it. Clearing an already absent token is not an error.
func (r *repository) UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error {
	const query = `
    UPDATE users SET refresh_token = @refresh_token, updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":            id,
		"refresh_token": refreshToken,
	}

	if _, err := r.conn.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	return nil
}

func (r *repository) scanOne(ctx context.Context, query string, args pgx.NamedArgs) (*models.User, error) {
	var user models.User
	err := r.conn.QueryRow(ctx, query, args).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("error querying user", zap.Error(err))
		return nil, err
	}

	return &user, nil
}

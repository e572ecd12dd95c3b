package audit

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
	Create(ctx context.Context, event *models.AuditEvent) error
	ListRecent(ctx context.Context, limit uint64) ([]*models.AuditEvent, error)
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

func (r *repository) Create(ctx context.Context, event *models.AuditEvent) error {
	const query = `
    INSERT INTO audit_events (id, action, actor_id, subject, created_at)
    VALUES (@id, @action, @actor_id, @subject, NOW())
    `

	args := pgx.NamedArgs{
		"id":       event.ID,
		"action":   event.Action,
		"actor_id": event.ActorID,
		"subject":  event.Subject,
	}

	if _, err := r.conn.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}

func (r *repository) ListRecent(ctx context.Context, limit uint64) ([]*models.AuditEvent, error) {
	const query = `
    SELECT id, action, actor_id, subject, created_at
    FROM audit_events
    ORDER BY created_at DESC
    LIMIT @limit
    `

	rows, err := r.conn.Query(ctx, query, pgx.NamedArgs{"limit": int64(limit)})
	if err != nil {
		r.logger.Error("error listing audit events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*models.AuditEvent
	for rows.Next() {
		var event models.AuditEvent
		if err = rows.Scan(&event.ID, &event.Action, &event.ActorID, &event.Subject, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

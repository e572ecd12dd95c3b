package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

const (
	salesCacheKey = "reports:sales_summary"
	salesCacheTTL = 5 * time.Minute
)

type Service interface {
	SalesSummary(ctx context.Context) (*models.SalesSummary, error)
}

type service struct {
	conn   driver.PostgresPool
	cache  *redis.Client
	logger *zap.Logger
}

func NewService(conn driver.PostgresPool, cache *redis.Client, logger *zap.Logger) Service {
	return &service{
		conn:   conn,
		cache:  cache,
		logger: logger,
	}
}

// SalesSummary aggregates the order book. The aggregate is cached for a few
// minutes; the reports screen tolerates slightly stale numbers.
func (s *service) SalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	if cached, err := s.cache.Get(ctx, salesCacheKey).Bytes(); err == nil {
		var summary models.SalesSummary
		if err = json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
		s.logger.Warn("failed to decode cached sales summary", zap.Error(err))
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("sales summary cache read failed", zap.Error(err))
	}

	summary, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err = s.cache.Set(ctx, salesCacheKey, encoded, salesCacheTTL).Err(); err != nil {
			s.logger.Warn("sales summary cache write failed", zap.Error(err))
		}
	}

	return summary, nil
}

func (s *service) aggregate(ctx context.Context) (*models.SalesSummary, error) {
	const query = `
    SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
    FROM orders
    GROUP BY status
    `

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		s.logger.Error("error aggregating orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	summary := &models.SalesSummary{
		GrossRevenue: decimal.Zero,
		ByStatus:     make(map[string]uint64),
		GeneratedAt:  time.Now(),
	}

	for rows.Next() {
		var (
			status  string
			count   uint64
			revenue decimal.Decimal
		)
		if err = rows.Scan(&status, &count, &revenue); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = count
		summary.OrderCount += count
		summary.GrossRevenue = summary.GrossRevenue.Add(revenue)
	}

	return summary, rows.Err()
}

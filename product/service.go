package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goflare.io/merchant/audit"
	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
	"goflare.io/merchant/pricing"
)

const (
	listCacheKey = "catalog:products"
	listCacheTTL = time.Minute
)

type Service interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint64) (*models.Product, error)
	Update(ctx context.Context, product *models.PartialProduct) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, limit, offset uint64) ([]*models.Product, error)
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	cache              *redis.Client
	recorder           audit.Recorder
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, cache *redis.Client, recorder audit.Recorder, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		cache:              cache,
		recorder:           recorder,
		logger:             logger,
	}
}

// Create derives the sellable prices from the cost basis, margin, and taxes
// before persisting. Derived prices are never accepted from the caller.
func (s *service) Create(ctx context.Context, product *models.Product) error {
	if err := s.reprice(product); err != nil {
		return err
	}

	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, product)
	})
	if err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.recorder.Record(models.AuditProductCreated, "", strconv.FormatUint(product.ID, 10))

	return nil
}

func (s *service) GetByID(ctx context.Context, id uint64) (*models.Product, error) {
	var product *models.Product
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		product, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return product, err
}

// Update merges the provided fields onto the stored record; omitted fields
// keep their stored value. The derived prices are recomputed on every change,
// so a stale final price can never survive an edit to the cost basis, margin,
// or tax list.
func (s *service) Update(ctx context.Context, product *models.PartialProduct) error {
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.repo.GetByID(ctx, tx, product.ID)
		if err != nil {
			return fmt.Errorf("failed to get existing product: %w", err)
		}

		if product.Name != nil {
			existing.Name = *product.Name
		}
		if product.Description != nil {
			existing.Description = *product.Description
		}
		if product.Active != nil {
			existing.Active = *product.Active
		}
		if product.CostBasis != nil {
			existing.CostBasis = *product.CostBasis
		}
		if product.ProfitMargin != nil {
			existing.ProfitMargin = *product.ProfitMargin
		}
		if product.Taxes != nil {
			existing.Taxes = *product.Taxes
		}

		if err = s.reprice(existing); err != nil {
			return err
		}

		return s.repo.Update(ctx, tx, existing)
	})
	if err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.recorder.Record(models.AuditProductUpdated, "", strconv.FormatUint(product.ID, 10))

	return nil
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.recorder.Record(models.AuditProductDeleted, "", strconv.FormatUint(id, 10))

	return nil
}

func (s *service) List(ctx context.Context, limit, offset uint64) ([]*models.Product, error) {
	key := fmt.Sprintf("%s:%d:%d", listCacheKey, limit, offset)

	if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var products []*models.Product
		if err = json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		s.logger.Warn("failed to decode cached product list", zap.Error(err))
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("product list cache read failed", zap.Error(err))
	}

	var products []*models.Product
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		products, err = s.repo.List(ctx, tx, limit, offset, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(products); err == nil {
		if err = s.cache.Set(ctx, key, encoded, listCacheTTL).Err(); err != nil {
			s.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}

	return products, nil
}

func (s *service) reprice(product *models.Product) error {
	result, err := pricing.Compute(product.CostBasis, product.ProfitMargin, product.Taxes)
	if err != nil {
		return err
	}

	product.PriceWithMargin = result.PriceWithMargin
	product.FinalPrice = result.FinalPrice
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	iter := s.cache.Scan(ctx, 0, listCacheKey+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("failed to invalidate product list cache", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("product list cache scan failed", zap.Error(err))
	}
}

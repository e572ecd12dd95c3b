package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

type Service interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, limit, offset uint64) ([]*models.Customer, error)
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) Create(ctx context.Context, customer *models.Customer) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, customer)
	})
}

func (s *service) GetByID(ctx context.Context, id uint64) (*models.Customer, error) {
	var customer *models.Customer
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		customer, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return customer, err
}

func (s *service) Update(ctx context.Context, customer *models.Customer) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.repo.GetByID(ctx, tx, customer.ID)
		if err != nil {
			return fmt.Errorf("failed to get existing customer: %w", err)
		}

		if customer.Name != "" {
			existing.Name = customer.Name
		}
		if customer.Email != "" {
			existing.Email = customer.Email
		}
		if customer.Phone != "" {
			existing.Phone = customer.Phone
		}
		if customer.Location != "" {
			existing.Location = customer.Location
		}

		return s.repo.Update(ctx, tx, existing)
	})
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *service) List(ctx context.Context, limit, offset uint64) ([]*models.Customer, error) {
	var customers []*models.Customer
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		customers, err = s.repo.List(ctx, tx, limit, offset)
		return err
	})
	return customers, err
}

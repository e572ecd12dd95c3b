package order

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/audit"
	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
	"goflare.io/merchant/models/enum"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Service interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status enum.OrderStatus) error
	List(ctx context.Context, limit, offset uint64, status enum.OrderStatus) ([]*models.Order, error)
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	recorder           audit.Recorder
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, recorder audit.Recorder, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		recorder:           recorder,
		logger:             logger,
	}
}

func (s *service) Create(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = enum.OrderStatusPending
	}
	if !order.Status.Valid() {
		return ErrInvalidStatus
	}

	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, order)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(models.AuditOrderCreated, "", strconv.FormatUint(order.ID, 10))

	return nil
}

func (s *service) GetByID(ctx context.Context, id uint64) (*models.Order, error) {
	var order *models.Order
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return order, err
}

func (s *service) UpdateStatus(ctx context.Context, id uint64, status enum.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, &models.PartialOrder{ID: id, Status: &status})
	})
	if err != nil {
		return err
	}

	s.recorder.Record(models.AuditOrderUpdated, "", strconv.FormatUint(id, 10))

	return nil
}

func (s *service) List(ctx context.Context, limit, offset uint64, status enum.OrderStatus) ([]*models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var orders []*models.Order
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		orders, err = s.repo.List(ctx, tx, limit, offset, status)
		return err
	})
	return orders, err
}

package discount

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/merchant/audit"
	"goflare.io/merchant/driver"
	"goflare.io/merchant/models"
)

var (
	ErrCodeRequired = errors.New("discount code is required")
	ErrInvalidType  = errors.New("invalid discount type")
	ErrInvalidValue = errors.New("discount value must be positive")
)

type Service interface {
	Create(ctx context.Context, discount *models.Discount) error
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	Update(ctx context.Context, discount *models.PartialDiscount) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, limit, offset uint64) ([]*models.Discount, error)
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

// Create stores a discount code. Codes are uppercased the way the dashboard
// displays them.
func (s *service) Create(ctx context.Context, discount *models.Discount) error {
	discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	if discount.Code == "" {
		return ErrCodeRequired
	}
	if !discount.Type.Valid() {
		return ErrInvalidType
	}
	if !discount.Value.IsPositive() {
		return ErrInvalidValue
	}

	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, discount)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(models.AuditDiscountCreated, "", discount.Code)

	return nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount *models.Discount
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		discount, err = s.repo.GetByCode(ctx, tx, strings.ToUpper(strings.TrimSpace(code)))
		return err
	})
	return discount, err
}

func (s *service) Update(ctx context.Context, discount *models.PartialDiscount) error {
	if discount.Type != nil && !discount.Type.Valid() {
		return ErrInvalidType
	}
	if discount.Value != nil && !discount.Value.IsPositive() {
		return ErrInvalidValue
	}
	if discount.Code != nil {
		upper := strings.ToUpper(strings.TrimSpace(*discount.Code))
		if upper == "" {
			return ErrCodeRequired
		}
		discount.Code = &upper
	}

	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, discount)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(models.AuditDiscountUpdated, "", strconv.FormatUint(discount.ID, 10))

	return nil
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *service) List(ctx context.Context, limit, offset uint64) ([]*models.Discount, error) {
	var discounts []*models.Discount
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		discounts, err = s.repo.List(ctx, tx, limit, offset)
		return err
	})
	return discounts, err
}

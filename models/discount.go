package models

import (
	"time"

	"github.com/shopspring/decimal"

	"goflare.io/merchant/models/enum"
)

// Discount 代表折扣碼
// Discount represents a discount code
type Discount struct {
	ID         uint64            `json:"id"`
	Code       string            `json:"code"`
	Type       enum.DiscountType `json:"type"`
	Value      decimal.Decimal   `json:"value"`
	UsageLimit uint32            `json:"usage_limit"`
	Active     bool              `json:"active"`
	StartsAt   time.Time         `json:"starts_at"`
	EndsAt     *time.Time        `json:"ends_at"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type PartialDiscount struct {
	ID         uint64
	Code       *string
	Type       *enum.DiscountType
	Value      *decimal.Decimal
	UsageLimit *uint32
	Active     *bool
	StartsAt   *time.Time
	EndsAt     *time.Time
}

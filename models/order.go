package models

import (
	"time"

	"github.com/shopspring/decimal"

	"goflare.io/merchant/models/enum"
)

// Order 代表客戶訂單
// Order represents a customer order
type Order struct {
	ID         uint64           `json:"id"`
	CustomerID uint64           `json:"customer_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Items      uint32           `json:"items"`
	Status     enum.OrderStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type PartialOrder struct {
	ID         uint64
	CustomerID *uint64
	Amount     *decimal.Decimal
	Items      *uint32
	Status     *enum.OrderStatus
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary 代表銷售報表彙總
// SalesSummary aggregates the order book for the reports screen
type SalesSummary struct {
	OrderCount   uint64            `json:"order_count"`
	GrossRevenue decimal.Decimal   `json:"gross_revenue"`
	ByStatus     map[string]uint64 `json:"by_status"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

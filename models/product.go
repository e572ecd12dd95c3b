package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 代表可販售的商品
// Product represents a sellable catalog item
type Product struct {
	ID              uint64          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Active          bool            `json:"active"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	Taxes           []TaxRule       `json:"taxes"`
	PriceWithMargin decimal.Decimal `json:"price_with_margin"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewProduct() *Product {
	return &Product{}
}

type PartialProduct struct {
	ID           uint64
	Name         *string
	Description  *string
	Active       *bool
	CostBasis    *decimal.Decimal
	ProfitMargin *decimal.Decimal
	Taxes        *[]TaxRule
}

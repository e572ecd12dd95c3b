package models

import "github.com/shopspring/decimal"

// TaxRule is a named percentage surcharge applied on the margin-inclusive
// price. Names are display-only and may repeat; order is preserved for
// display but never affects the total.
type TaxRule struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

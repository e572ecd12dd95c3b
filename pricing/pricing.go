package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"goflare.io/merchant/models"
)

// ErrInvalidInput is returned when the cost basis, margin, or any tax
// percentage is negative. There is no partial result for negative inputs.
var ErrInvalidInput = errors.New("pricing: negative input")

var oneHundred = decimal.NewFromInt(100)

// Result carries the derived prices at full precision. Rounding to two
// decimal places is left to the presentation layer.
type Result struct {
	PriceWithMargin decimal.Decimal `json:"price_with_margin"`
	FinalPrice      decimal.Decimal `json:"final_price"`
}

// Compute derives the sellable price from a cost basis, a profit margin
// percentage, and an ordered list of tax rules. Each tax is applied on the
// margin-inclusive price and the tax amounts are summed, never compounded on
// each other, so the list order does not affect the total.
func Compute(costBasis, profitMargin decimal.Decimal, taxes []models.TaxRule) (Result, error) {
	if costBasis.IsNegative() || profitMargin.IsNegative() {
		return Result{}, ErrInvalidInput
	}
	for _, tax := range taxes {
		if tax.Percentage.IsNegative() {
			return Result{}, ErrInvalidInput
		}
	}

	marginAmount := costBasis.Mul(profitMargin).Div(oneHundred)
	priceWithMargin := costBasis.Add(marginAmount)

	taxAmount := decimal.Zero
	for _, tax := range taxes {
		taxAmount = taxAmount.Add(priceWithMargin.Mul(tax.Percentage).Div(oneHundred))
	}

	return Result{
		PriceWithMargin: priceWithMargin,
		FinalPrice:      priceWithMargin.Add(taxAmount),
	}, nil
}

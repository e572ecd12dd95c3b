package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/merchant/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tax(name, pct string) models.TaxRule {
	return models.TaxRule{Name: name, Percentage: dec(pct)}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name            string
		costBasis       string
		margin          string
		taxes           []models.TaxRule
		priceWithMargin string
		finalPrice      string
	}{
		{
			name:            "no margin no taxes",
			costBasis:       "100",
			margin:          "0",
			priceWithMargin: "100",
			finalPrice:      "100",
		},
		{
			name:            "margin only",
			costBasis:       "100",
			margin:          "20",
			priceWithMargin: "120",
			finalPrice:      "120",
		},
		{
			name:            "margin and single tax",
			costBasis:       "100",
			margin:          "20",
			taxes:           []models.TaxRule{tax("VAT", "10")},
			priceWithMargin: "120",
			finalPrice:      "132",
		},
		{
			name:            "zero cost basis",
			costBasis:       "0",
			margin:          "50",
			taxes:           []models.TaxRule{tax("VAT", "10")},
			priceWithMargin: "0",
			finalPrice:      "0",
		},
		{
			name:            "taxes sum on the margin-inclusive price, not each other",
			costBasis:       "200",
			margin:          "10",
			taxes:           []models.TaxRule{tax("VAT", "5"), tax("GST", "5")},
			priceWithMargin: "220",
			finalPrice:      "242",
		},
		{
			name:            "duplicate tax names each contribute",
			costBasis:       "100",
			margin:          "0",
			taxes:           []models.TaxRule{tax("VAT", "10"), tax("VAT", "10")},
			priceWithMargin: "100",
			finalPrice:      "120",
		},
		{
			name:            "fractional inputs stay exact",
			costBasis:       "19.99",
			margin:          "12.5",
			taxes:           []models.TaxRule{tax("VAT", "7.7")},
			priceWithMargin: "22.48875",
			finalPrice:      "24.22038375",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(dec(tt.costBasis), dec(tt.margin), tt.taxes)
			require.NoError(t, err)
			assert.True(t, got.PriceWithMargin.Equal(dec(tt.priceWithMargin)),
				"price with margin: got %s", got.PriceWithMargin)
			assert.True(t, got.FinalPrice.Equal(dec(tt.finalPrice)),
				"final price: got %s", got.FinalPrice)
		})
	}
}

func TestComputeRejectsNegativeInputs(t *testing.T) {
	_, err := Compute(dec("-1"), dec("0"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Compute(dec("10"), dec("-0.1"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Compute(dec("10"), dec("5"), []models.TaxRule{tax("VAT", "-3")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeOrderingInvariants(t *testing.T) {
	taxes := []models.TaxRule{tax("VAT", "10"), tax("GST", "5"), tax("city", "2.5")}
	reversed := []models.TaxRule{taxes[2], taxes[1], taxes[0]}

	a, err := Compute(dec("149.99"), dec("35"), taxes)
	require.NoError(t, err)
	b, err := Compute(dec("149.99"), dec("35"), reversed)
	require.NoError(t, err)

	assert.True(t, a.FinalPrice.Equal(b.FinalPrice))

	// A zero-percentage tax never moves the final price.
	withZero, err := Compute(dec("149.99"), dec("35"), append(taxes, tax("exempt", "0")))
	require.NoError(t, err)
	assert.True(t, a.FinalPrice.Equal(withZero.FinalPrice))
}

func TestComputePriceOrdering(t *testing.T) {
	inputs := []struct{ cost, margin, taxPct string }{
		{"0", "0", "0"},
		{"0.01", "0", "0"},
		{"100", "20", "10"},
		{"3.33", "99.9", "25"},
		{"1000000", "0.001", "0.001"},
	}

	for _, in := range inputs {
		got, err := Compute(dec(in.cost), dec(in.margin), []models.TaxRule{tax("t", in.taxPct)})
		require.NoError(t, err)
		assert.True(t, got.FinalPrice.GreaterThanOrEqual(got.PriceWithMargin))
		assert.True(t, got.PriceWithMargin.GreaterThanOrEqual(dec(in.cost)))
	}
}

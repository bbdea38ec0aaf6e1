package tax

import (
	"context"

	"github.com/shopspring/decimal"
)

// PercentageCalculator applies a single flat rate, e.g. 11 for 11% VAT.
// A zero rate makes it a no-tax calculator.
type PercentageCalculator struct {
	ratePercent decimal.Decimal
}

// NewPercentageCalculator creates a flat-rate tax calculator.
func NewPercentageCalculator(ratePercent float64) *PercentageCalculator {
	return &PercentageCalculator{ratePercent: decimal.NewFromFloat(ratePercent)}
}

// TaxCents returns the taxable amount times the rate, rounded half up to
// the nearest currency unit.
func (c *PercentageCalculator) TaxCents(ctx context.Context, taxableCents int64) (int64, error) {
	if taxableCents <= 0 || c.ratePercent.IsZero() {
		return 0, nil
	}
	tax := decimal.NewFromInt(taxableCents).Mul(c.ratePercent).Div(decimal.NewFromInt(100))
	return tax.Round(0).IntPart(), nil
}

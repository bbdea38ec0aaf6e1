package tax_test

import (
	"context"
	"testing"

	"github.com/danukusuma/gerai/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageCalculator_FlatRate(t *testing.T) {
	calc := tax.NewPercentageCalculator(11)

	got, err := calc.TaxCents(context.Background(), 100_000)

	require.NoError(t, err)
	assert.Equal(t, int64(11_000), got)
}

func TestPercentageCalculator_RoundsHalfUp(t *testing.T) {
	// 11% of 50 is 5.5, which rounds up to 6.
	calc := tax.NewPercentageCalculator(11)

	got, err := calc.TaxCents(context.Background(), 50)

	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
}

func TestPercentageCalculator_ZeroRate(t *testing.T) {
	calc := tax.NewPercentageCalculator(0)

	got, err := calc.TaxCents(context.Background(), 925_000)

	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestPercentageCalculator_NonPositiveTaxable(t *testing.T) {
	calc := tax.NewPercentageCalculator(11)

	for _, taxable := range []int64{0, -100} {
		got, err := calc.TaxCents(context.Background(), taxable)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)
	}
}

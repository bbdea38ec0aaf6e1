package promo_test

import (
	"context"
	"testing"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/promo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticValidator_KnownCode(t *testing.T) {
	v := promo.NewStaticValidator(map[string]float64{"HEMAT10": 10})

	rate, err := v.Validate(context.Background(), "HEMAT10")

	require.NoError(t, err)
	assert.Equal(t, 10.0, rate)
}

func TestStaticValidator_CaseInsensitive(t *testing.T) {
	v := promo.NewStaticValidator(map[string]float64{"hemat10": 10})

	rate, err := v.Validate(context.Background(), "  Hemat10 ")

	require.NoError(t, err)
	assert.Equal(t, 10.0, rate)
}

func TestStaticValidator_UnknownCode(t *testing.T) {
	v := promo.NewStaticValidator(map[string]float64{"HEMAT10": 10})

	_, err := v.Validate(context.Background(), "BOGUS")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPromoCode)
}

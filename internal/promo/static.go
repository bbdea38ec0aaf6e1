package promo

import (
	"context"
	"strings"

	"github.com/danukusuma/gerai/internal/domain"
)

// StaticValidator accepts codes from a fixed table loaded at construction,
// mapping code to discount rate in percent. Lookup is case-insensitive.
type StaticValidator struct {
	rates map[string]float64
}

// NewStaticValidator creates a validator over the given code table.
func NewStaticValidator(codes map[string]float64) *StaticValidator {
	rates := make(map[string]float64, len(codes))
	for code, rate := range codes {
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return &StaticValidator{rates: rates}
}

// Validate returns the discount rate for a known code.
func (v *StaticValidator) Validate(ctx context.Context, code string) (float64, error) {
	rate, ok := v.rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "promo.validate",
			Message: domain.ErrInvalidPromoCode.Message,
		}
	}
	return rate, nil
}

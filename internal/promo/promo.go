// Package promo validates promo codes. Code authenticity is an external
// concern: the cart aggregator only applies a discount rate a validator
// has already accepted.
package promo

import "context"

// Validator checks a promo code and returns its discount rate in percent.
// A rejected code fails with domain.ErrInvalidPromoCode.
type Validator interface {
	Validate(ctx context.Context, code string) (discountRatePercent float64, err error)
}

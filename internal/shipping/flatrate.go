package shipping

import (
	"context"

	"github.com/danukusuma/gerai/internal/domain"
)

// FlatRateQuoter charges one fixed cost per order regardless of contents
// or destination.
type FlatRateQuoter struct {
	costCents int64
}

// NewFlatRateQuoter creates a quoter with the given per-order cost.
func NewFlatRateQuoter(costCents int64) *FlatRateQuoter {
	return &FlatRateQuoter{costCents: costCents}
}

// QuoteCents returns the configured flat cost, or zero for an empty cart.
func (q *FlatRateQuoter) QuoteCents(ctx context.Context, cart domain.Cart) (int64, error) {
	if cart.IsEmpty() {
		return 0, nil
	}
	return q.costCents, nil
}

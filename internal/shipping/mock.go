package shipping

import (
	"context"

	"github.com/danukusuma/gerai/internal/domain"
)

// MockQuoter returns canned responses for tests.
type MockQuoter struct {
	CostCents int64
	Err       error
	Calls     int
}

func (m *MockQuoter) QuoteCents(ctx context.Context, cart domain.Cart) (int64, error) {
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	if cart.IsEmpty() {
		return 0, nil
	}
	return m.CostCents, nil
}

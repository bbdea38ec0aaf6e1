// Package shipping quotes per-order shipping costs. Rate computation is an
// external concern; this engine only adds whatever the quoter returns to
// the order totals.
package shipping

import (
	"context"

	"github.com/danukusuma/gerai/internal/domain"
)

// Quoter returns the shipping cost for a cart. Implementations can wrap
// carrier integrations; the engine ships with a flat-rate quoter.
type Quoter interface {
	// QuoteCents returns the shipping cost for the cart in the smallest
	// currency unit. An empty cart always quotes zero.
	QuoteCents(ctx context.Context, cart domain.Cart) (int64, error)
}

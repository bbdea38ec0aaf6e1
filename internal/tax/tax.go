// Package tax computes order tax amounts. Only a flat percentage rate is
// supported; jurisdiction-aware computation belongs to an external service.
package tax

import "context"

// Calculator computes the tax owed on a taxable amount.
type Calculator interface {
	// TaxCents returns the tax on the taxable amount in the smallest
	// currency unit.
	TaxCents(ctx context.Context, taxableCents int64) (int64, error)
}

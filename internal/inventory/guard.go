// Package inventory answers availability questions against the read-only
// inventory repository. It holds no state of its own: every check re-reads
// the current stock level, so staleness is bounded by one call's duration.
package inventory

import (
	"context"

	"github.com/danukusuma/gerai/internal/domain"
)

// Guard validates requested quantities against current stock. It performs
// a point-in-time check only; no physical stock hold is placed.
type Guard struct {
	inventory domain.InventoryReader
}

// NewGuard creates a Guard over the given inventory reader.
func NewGuard(inventory domain.InventoryReader) *Guard {
	return &Guard{inventory: inventory}
}

// Available returns the quantity on hand for a product. An unknown product
// is treated as zero stock, not an error; infrastructure failures from the
// reader are still surfaced.
func (g *Guard) Available(ctx context.Context, productID string) (int, error) {
	rec, err := g.inventory.GetInventory(ctx, productID)
	if err != nil {
		return 0, domain.WrapError(err, domain.EINTERNAL, "inventory.available", "failed to read inventory")
	}
	if rec == nil {
		return 0, nil
	}
	return rec.QuantityOnHand, nil
}

// CanReserve reports whether quantity units of the product are satisfiable
// right now: quantity must be positive and no greater than Available.
// Callers branch on the boolean; a false result is not an error.
func (g *Guard) CanReserve(ctx context.Context, productID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	available, err := g.Available(ctx, productID)
	if err != nil {
		return false, err
	}
	return quantity <= available, nil
}

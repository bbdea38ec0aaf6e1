package inventory_test

import (
	"context"
	"testing"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/inventory"
	"github.com/danukusuma/gerai/internal/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(records ...domain.InventoryRecord) *inventory.Guard {
	store := memory.NewStore()
	for _, rec := range records {
		store.PutInventory(rec)
	}
	return inventory.NewGuard(store)
}

func TestGuard_Available_KnownProduct(t *testing.T) {
	guard := newGuard(domain.InventoryRecord{ProductID: "kopi-arabica", QuantityOnHand: 12})

	qty, err := guard.Available(context.Background(), "kopi-arabica")

	require.NoError(t, err)
	assert.Equal(t, 12, qty)
}

func TestGuard_Available_UnknownProductIsZeroStock(t *testing.T) {
	guard := newGuard()

	qty, err := guard.Available(context.Background(), "no-such-product")

	require.NoError(t, err, "unknown product is zero stock, not an error")
	assert.Equal(t, 0, qty)
}

func TestGuard_CanReserve_WithinStock(t *testing.T) {
	guard := newGuard(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 5})

	ok, err := guard.CanReserve(context.Background(), "p1", 5)

	require.NoError(t, err)
	assert.True(t, ok, "reserving exactly the available quantity is allowed")
}

func TestGuard_CanReserve_ExceedsStock(t *testing.T) {
	guard := newGuard(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 1})

	ok, err := guard.CanReserve(context.Background(), "p1", 2)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_CanReserve_NonPositiveQuantity(t *testing.T) {
	guard := newGuard(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 10})

	for _, qty := range []int{0, -1, -100} {
		ok, err := guard.CanReserve(context.Background(), "p1", qty)
		require.NoError(t, err)
		assert.False(t, ok, "quantity %d must not be reservable", qty)
	}
}

func TestGuard_CanReserve_UnknownProduct(t *testing.T) {
	guard := newGuard()

	ok, err := guard.CanReserve(context.Background(), "ghost", 1)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_RereadsCurrentStock(t *testing.T) {
	store := memory.NewStore()
	store.PutInventory(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 3})
	guard := inventory.NewGuard(store)

	ok, err := guard.CanReserve(context.Background(), "p1", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stock changes externally between calls; the guard must see it.
	store.PutInventory(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 2})

	ok, err = guard.CanReserve(context.Background(), "p1", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

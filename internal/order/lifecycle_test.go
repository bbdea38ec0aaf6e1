package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/danukusuma/gerai/internal/cart"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/inventory"
	"github.com/danukusuma/gerai/internal/memory"
	"github.com/danukusuma/gerai/internal/order"
	"github.com/danukusuma/gerai/internal/pricing"
	"github.com/danukusuma/gerai/internal/promo"
	"github.com/danukusuma/gerai/internal/shipping"
	"github.com/danukusuma/gerai/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memory.Store
	agg       *cart.Aggregator
	lifecycle *order.Lifecycle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	guard := inventory.NewGuard(store)
	cfg := pricing.DefaultConfig()
	agg := cart.NewAggregator(
		store, guard, pricing.NewEngine(cfg),
		promo.NewStaticValidator(map[string]float64{"HEMAT10": 10}),
		shipping.NewFlatRateQuoter(25_000),
		tax.NewPercentageCalculator(0),
	)
	return &fixture{
		store:     store,
		agg:       agg,
		lifecycle: order.NewLifecycle(agg, guard),
	}
}

func (f *fixture) seededCart(t *testing.T) domain.Cart {
	t.Helper()
	f.store.PutProduct(domain.Product{ID: "p1", BasePriceCents: 100_000, IsActive: true})
	f.store.PutInventory(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 10})
	c, err := f.agg.AddItem(context.Background(), domain.Cart{}, "p1", 2)
	require.NoError(t, err)
	return c
}

func testAddress() domain.Address {
	return domain.Address{
		Name:       "Budi Santoso",
		Line1:      "Jl. Sudirman No. 12",
		City:       "Jakarta Selatan",
		Province:   "DKI Jakarta",
		PostalCode: "12190",
		Country:    "ID",
	}
}

func TestLifecycle_Create_SnapshotsPricing(t *testing.T) {
	f := newFixture(t)
	c := f.seededCart(t)

	o, err := f.lifecycle.Create(context.Background(), c, domain.RoleAgent, testAddress())

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, domain.OrderPending, o.OrderStatus)
	assert.Equal(t, domain.PaymentPending, o.PaymentStatus)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, int64(125_000), o.Lines[0].UnitPriceAtOrder)
	assert.Equal(t, int64(250_000), o.Lines[0].SubtotalCents)
	assert.Equal(t, int64(250_000), o.Totals.SubtotalCents)
	assert.Equal(t, int64(25_000), o.Totals.ShippingCostCents)
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, string(domain.OrderPending), o.StatusHistory[0].ToStatus)
	assert.False(t, o.StatusHistory[0].OccurredAt.IsZero())
}

func TestLifecycle_Create_PriceFrozenAgainstLaterChanges(t *testing.T) {
	f := newFixture(t)
	c := f.seededCart(t)

	o, err := f.lifecycle.Create(context.Background(), c, domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	// Catalog price changes after checkout; the order keeps its snapshot.
	f.store.PutProduct(domain.Product{ID: "p1", BasePriceCents: 999_999, IsActive: true})

	assert.Equal(t, int64(100_000), o.Lines[0].UnitPriceAtOrder)
	assert.Equal(t, int64(200_000), o.Totals.SubtotalCents)
}

func TestLifecycle_Create_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.lifecycle.Create(context.Background(), domain.Cart{}, domain.RoleCustomer, testAddress())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestLifecycle_Create_RevalidatesStock(t *testing.T) {
	f := newFixture(t)
	c := f.seededCart(t)

	// Stock drains between the cart mutation and checkout.
	f.store.PutInventory(domain.InventoryRecord{ProductID: "p1", QuantityOnHand: 1})

	_, err := f.lifecycle.Create(context.Background(), c, domain.RoleCustomer, testAddress())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestLifecycle_Transition_HappyPath(t *testing.T) {
	f := newFixture(t)
	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	path := []domain.OrderStatus{
		domain.OrderConfirmed, domain.OrderProcessing,
		domain.OrderShipped, domain.OrderDelivered,
	}
	for _, status := range path {
		o, err = f.lifecycle.Transition(o, status)
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, o.OrderStatus)
	}

	// Creation entry plus one per transition.
	assert.Len(t, o.StatusHistory, 1+len(path))
}

func TestLifecycle_Transition_CancelShippedOrderFails(t *testing.T) {
	f := newFixture(t)
	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	for _, status := range []domain.OrderStatus{domain.OrderConfirmed, domain.OrderProcessing, domain.OrderShipped} {
		o, err = f.lifecycle.Transition(o, status)
		require.NoError(t, err)
	}

	got, err := f.lifecycle.Transition(o, domain.OrderCancelled)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, o, got, "a rejected transition leaves the order untouched")
}

func TestLifecycle_Transition_ExhaustiveAdjacency(t *testing.T) {
	// Attempt every (state, target) pair; exactly the listed moves succeed.
	legal := map[domain.OrderStatus][]domain.OrderStatus{
		domain.OrderPending:    {domain.OrderConfirmed, domain.OrderCancelled},
		domain.OrderConfirmed:  {domain.OrderProcessing, domain.OrderCancelled},
		domain.OrderProcessing: {domain.OrderShipped, domain.OrderCancelled},
		domain.OrderShipped:    {domain.OrderDelivered},
		domain.OrderDelivered:  {},
		domain.OrderCancelled:  {},
	}

	f := newFixture(t)
	base, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	for _, from := range domain.OrderStatuses {
		allowed := map[domain.OrderStatus]bool{}
		for _, to := range legal[from] {
			allowed[to] = true
		}

		for _, to := range domain.OrderStatuses {
			o := base.Clone()
			o.OrderStatus = from

			got, err := f.lifecycle.Transition(o, to)
			if allowed[to] {
				require.NoError(t, err, "%s -> %s must be permitted", from, to)
				assert.Equal(t, to, got.OrderStatus)
			} else {
				require.Error(t, err, "%s -> %s must be rejected", from, to)
				assert.ErrorIs(t, err, domain.ErrIllegalTransition)
				assert.Equal(t, from, got.OrderStatus)
			}
		}
	}
}

func TestLifecycle_MarkPayment_PaidIsTerminal(t *testing.T) {
	f := newFixture(t)
	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	o, err = f.lifecycle.MarkPayment(o, domain.PaymentPaid)
	require.NoError(t, err)

	for _, target := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentFailed, domain.PaymentPaid} {
		_, err := f.lifecycle.MarkPayment(o, target)
		require.Error(t, err, "paid -> %s must be rejected", target)
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	}
}

func TestLifecycle_MarkPayment_FailedRetries(t *testing.T) {
	f := newFixture(t)
	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	o, err = f.lifecycle.MarkPayment(o, domain.PaymentFailed)
	require.NoError(t, err)

	o, err = f.lifecycle.MarkPayment(o, domain.PaymentPending)
	require.NoError(t, err, "failed may retry back to pending")

	o, err = f.lifecycle.MarkPayment(o, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, o.PaymentStatus)
}

func TestLifecycle_MarkPayment_IndependentOfOrderStatus(t *testing.T) {
	f := newFixture(t)
	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)

	o, err = f.lifecycle.Transition(o, domain.OrderCancelled)
	require.NoError(t, err)

	o, err = f.lifecycle.MarkPayment(o, domain.PaymentFailed)
	require.NoError(t, err, "payment status advances independently of fulfillment")
	assert.Equal(t, domain.OrderCancelled, o.OrderStatus)
	assert.Equal(t, domain.PaymentFailed, o.PaymentStatus)
}

func TestLifecycle_HistoryIsAppendOnly(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t)
	f.lifecycle = order.NewLifecycle(f.agg, inventory.NewGuard(f.store),
		order.WithClock(func() time.Time { return fixed }),
		order.WithIDGenerator(func() string { return "order-001" }),
	)

	o, err := f.lifecycle.Create(context.Background(), f.seededCart(t), domain.RoleCustomer, testAddress())
	require.NoError(t, err)
	assert.Equal(t, "order-001", o.ID)

	next, err := f.lifecycle.Transition(o, domain.OrderConfirmed)
	require.NoError(t, err)

	// The original order value is untouched; the copy gained one entry.
	assert.Len(t, o.StatusHistory, 1)
	require.Len(t, next.StatusHistory, 2)
	assert.Equal(t, o.StatusHistory[0], next.StatusHistory[0], "prior entries are never rewritten")
	assert.Equal(t, string(domain.OrderPending), next.StatusHistory[1].FromStatus)
	assert.Equal(t, string(domain.OrderConfirmed), next.StatusHistory[1].ToStatus)
	assert.Equal(t, fixed, next.StatusHistory[1].OccurredAt)
}

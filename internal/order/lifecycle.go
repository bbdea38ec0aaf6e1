// Package order turns validated carts into orders and advances them
// through an explicit status machine. Orders are append-only value
// objects: a transition returns an updated copy with one new history
// entry and never rewrites prior state, so a rejected transition leaves
// the order exactly as it was.
package order

import (
	"context"
	"time"

	"github.com/danukusuma/gerai/internal/cart"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/inventory"
	"github.com/google/uuid"
)

// orderTransitions is the closed adjacency list for fulfillment status.
// Cancellation is reachable until the order ships; a shipped order needs a
// return flow, not a cancellation.
var orderTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:    {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed:  {domain.OrderProcessing, domain.OrderCancelled},
	domain.OrderProcessing: {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped:    {domain.OrderDelivered},
	domain.OrderDelivered:  nil,
	domain.OrderCancelled:  nil,
}

// paymentTransitions runs parallel to and independent of fulfillment.
// Paid is terminal; a failed payment may retry back to pending.
var paymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentPending: {domain.PaymentPaid, domain.PaymentFailed},
	domain.PaymentPaid:    nil,
	domain.PaymentFailed:  {domain.PaymentPending},
}

// CanTransition reports whether an order status move is permitted.
func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether a payment status move is permitted.
func CanTransitionPayment(from, to domain.PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Lifecycle creates orders from carts and applies status transitions.
type Lifecycle struct {
	agg   *cart.Aggregator
	guard *inventory.Guard
	now   func() time.Time
	newID func() string
}

// Option customizes a Lifecycle.
type Option func(*Lifecycle)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) { l.now = now }
}

// WithIDGenerator overrides order ID generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(l *Lifecycle) { l.newID = newID }
}

// NewLifecycle wires the lifecycle to the cart aggregator and inventory guard.
func NewLifecycle(agg *cart.Aggregator, guard *inventory.Guard, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		agg:   agg,
		guard: guard,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create freezes a cart into a new order: role pricing is snapshotted into
// order lines, totals are computed once, and both statuses start pending.
// Every line is re-validated against current stock before freezing.
func (l *Lifecycle) Create(ctx context.Context, c domain.Cart, role domain.Role, shippingAddress domain.Address) (domain.Order, error) {
	const op = "order.create"

	if c.IsEmpty() {
		return domain.Order{}, &domain.Error{Code: domain.EINVALID, Op: op, Message: domain.ErrEmptyCart.Message}
	}

	priced, err := l.agg.PriceLines(ctx, c, role)
	if err != nil {
		return domain.Order{}, err
	}

	for _, line := range priced {
		ok, err := l.guard.CanReserve(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, &domain.Error{Code: domain.ECONFLICT, Op: op, Message: domain.ErrOutOfStock.Message}
		}
	}

	totals, err := l.agg.ComputeTotals(ctx, c, role)
	if err != nil {
		return domain.Order{}, err
	}

	lines := make([]domain.OrderLine, len(priced))
	for i, line := range priced {
		lines[i] = domain.OrderLine{
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			UnitPriceAtOrder: line.Unit.SellPriceCents,
			SubtotalCents:    line.LineSubtotalCents,
		}
	}

	createdAt := l.now()
	return domain.Order{
		ID:              l.newID(),
		Role:            role,
		Lines:           lines,
		Totals:          totals,
		OrderStatus:     domain.OrderPending,
		PaymentStatus:   domain.PaymentPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       createdAt,
		StatusHistory: []domain.StatusEvent{{
			Kind:       domain.EventOrderStatus,
			FromStatus: "",
			ToStatus:   string(domain.OrderPending),
			OccurredAt: createdAt,
		}},
	}, nil
}

// Transition advances the fulfillment status. A move not present in the
// adjacency list fails with ErrIllegalTransition and the input order is
// returned untouched.
func (l *Lifecycle) Transition(o domain.Order, newStatus domain.OrderStatus) (domain.Order, error) {
	const op = "order.transition"

	if !newStatus.Valid() {
		return o, domain.Errorf(domain.EINVALID, op, "unknown order status: %q", newStatus)
	}
	if !CanTransition(o.OrderStatus, newStatus) {
		return o, &domain.Error{Code: domain.ECONFLICT, Op: op, Message: domain.ErrIllegalTransition.Message}
	}

	next := o.Clone()
	next.StatusHistory = append(next.StatusHistory, domain.StatusEvent{
		Kind:       domain.EventOrderStatus,
		FromStatus: string(o.OrderStatus),
		ToStatus:   string(newStatus),
		OccurredAt: l.now(),
	})
	next.OrderStatus = newStatus
	return next, nil
}

// MarkPayment advances the payment status, independent of fulfillment.
// Once paid, no further payment transitions are permitted.
func (l *Lifecycle) MarkPayment(o domain.Order, newStatus domain.PaymentStatus) (domain.Order, error) {
	const op = "order.mark_payment"

	if !newStatus.Valid() {
		return o, domain.Errorf(domain.EINVALID, op, "unknown payment status: %q", newStatus)
	}
	if !CanTransitionPayment(o.PaymentStatus, newStatus) {
		return o, &domain.Error{Code: domain.ECONFLICT, Op: op, Message: domain.ErrIllegalTransition.Message}
	}

	next := o.Clone()
	next.StatusHistory = append(next.StatusHistory, domain.StatusEvent{
		Kind:       domain.EventPaymentStatus,
		FromStatus: string(o.PaymentStatus),
		ToStatus:   string(newStatus),
		OccurredAt: l.now(),
	})
	next.PaymentStatus = newStatus
	return next, nil
}

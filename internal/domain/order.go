package domain

import "time"

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrIllegalTransition = &Error{Code: ECONFLICT, Message: "Status transition not permitted from current state"}
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every order status.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderProcessing,
	OrderShipped, OrderDelivered, OrderCancelled,
}

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks payment independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentStatuses lists every payment status.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed}

// Valid reports whether s is a recognized payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// StatusEventKind distinguishes order-status from payment-status history entries.
type StatusEventKind string

const (
	EventOrderStatus   StatusEventKind = "order_status"
	EventPaymentStatus StatusEventKind = "payment_status"
)

// StatusEvent is one append-only history entry. A transition appends a new
// entry and never rewrites a prior one.
type StatusEvent struct {
	Kind       StatusEventKind `json:"kind"`
	FromStatus string          `json:"from_status"`
	ToStatus   string          `json:"to_status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Address is the shipping destination snapshotted onto an order.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// OrderLine snapshots pricing at order time. Once created it is never
// mutated, so later catalog price changes cannot reach past orders.
type OrderLine struct {
	ProductID        string `json:"product_id"`
	Quantity         int    `json:"quantity"`
	UnitPriceAtOrder int64  `json:"unit_price_at_order_cents"`
	SubtotalCents    int64  `json:"subtotal_cents"`
}

// Order is the durable result of a successful checkout. Orders are treated
// as append-only value objects: transitions produce an updated copy with a
// new history entry, never an in-place rewrite. Orders are never deleted,
// only cancelled.
type Order struct {
	ID              string        `json:"id"`
	Role            Role          `json:"role"`
	Lines           []OrderLine   `json:"lines"`
	Totals          OrderTotals   `json:"totals"`
	OrderStatus     OrderStatus   `json:"order_status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	StatusHistory   []StatusEvent `json:"status_history"`
	ShippingAddress Address       `json:"shipping_address"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Clone returns a deep copy of the order; history and line slices are
// never shared between the copy and the original.
func (o Order) Clone() Order {
	out := o
	if len(o.Lines) > 0 {
		out.Lines = make([]OrderLine, len(o.Lines))
		copy(out.Lines, o.Lines)
	}
	if len(o.StatusHistory) > 0 {
		out.StatusHistory = make([]StatusEvent, len(o.StatusHistory))
		copy(out.StatusHistory, o.StatusHistory)
	}
	return out
}

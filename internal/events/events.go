// Package events publishes order lifecycle events for downstream
// consumers (fulfillment, notifications, reporting).
package events

import (
	"context"
	"time"

	"github.com/danukusuma/gerai/internal/domain"
)

// Subjects for published events.
const (
	SubjectOrderCreated       = "gerai.orders.created"
	SubjectOrderStatusChanged = "gerai.orders.status_changed"
)

// OrderCreated is emitted once per successful checkout.
type OrderCreated struct {
	OrderID    string      `json:"order_id"`
	Role       domain.Role `json:"role"`
	TotalCents int64       `json:"total_cents"`
	ItemCount  int         `json:"item_count"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// OrderStatusChanged is emitted on every order or payment status
// transition.
type OrderStatusChanged struct {
	OrderID    string                 `json:"order_id"`
	Kind       domain.StatusEventKind `json:"kind"`
	FromStatus string                 `json:"from_status"`
	ToStatus   string                 `json:"to_status"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Publisher delivers order events. Implementations must not block the
// request path on slow consumers.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) error
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreated) error {
	return nil
}

func (NoopPublisher) PublishOrderStatusChanged(context.Context, OrderStatusChanged) error {
	return nil
}

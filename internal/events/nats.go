package events

import (
	"context"
	"encoding/json"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes order events to NATS subjects as JSON.
type NatsPublisher struct {
	conn *nats.Conn
}

var _ Publisher = (*NatsPublisher)(nil)

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("gerai"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, domain.Internal(err, "events.connect", "failed to connect to nats")
	}
	return &NatsPublisher{conn: conn}, nil
}

// Close drains the connection, flushing any buffered messages.
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}

func (p *NatsPublisher) PublishOrderCreated(_ context.Context, event OrderCreated) error {
	return p.publish(SubjectOrderCreated, event)
}

func (p *NatsPublisher) PublishOrderStatusChanged(_ context.Context, event OrderStatusChanged) error {
	return p.publish(SubjectOrderStatusChanged, event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return domain.Internal(err, "events.publish", "failed to encode event")
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return domain.Internal(err, "events.publish", "failed to publish event")
	}
	return nil
}

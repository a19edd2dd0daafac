package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber on an existing connection.
func NewSubscriber(conn *nats.Conn, stream string) (*Subscriber, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := EnsureStream(js, stream); err != nil {
		return nil, err
	}
	return &Subscriber{js: js}, nil
}

// SubscribeBoardSnapshots delivers every published board snapshot to handler.
// durable names the consumer so that replicas share deliveries.
func (s *Subscriber) SubscribeBoardSnapshots(ctx context.Context, durable string, handler func(ctx context.Context, snap *domain.BoardSnapshot) error) error {
	sub, err := s.js.QueueSubscribe(SnapshotFilter, durable, func(msg *nats.Msg) {
		var snap domain.BoardSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			// malformed payloads are never redelivered
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &snap); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
		nats.DeliverNew(),
	)
	if err != nil {
		return fmt.Errorf("subscribe snapshots: %w", err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes. The connection is owned by the caller.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
}

package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// Subjects carrying board events.
const (
	subjectPrefix   = "oebbdash."
	SnapshotSubject = subjectPrefix + "board.%s.snapshot"
	FailureSubject  = subjectPrefix + "board.%s.failure"
	SnapshotFilter  = subjectPrefix + "board.*.snapshot"
)

// FetchFailure is the payload of a failure event.
type FetchFailure struct {
	Connection domain.SavedConnection `json:"connection"`
	Reason     string                 `json:"reason"`
	At         time.Time              `json:"at"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// Connect opens a NATS connection that keeps reconnecting.
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

// EnsureStream creates or updates the stream holding board events.
func EnsureStream(js nats.JetStreamContext, name string) error {
	cfg := nats.StreamConfig{
		Name:      name,
		Subjects:  []string{subjectPrefix + "board.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    1 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// NewPublisher enables JetStream on conn and makes sure the stream exists.
func NewPublisher(conn *nats.Conn, stream string) (*Publisher, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := EnsureStream(js, stream); err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishBoardSnapshot(ctx context.Context, snap *domain.BoardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(fmt.Sprintf(SnapshotSubject, snap.BoardID), data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishFetchFailure(ctx context.Context, conn domain.SavedConnection, reason string) error {
	data, err := json.Marshal(FetchFailure{Connection: conn, Reason: reason, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(fmt.Sprintf(FailureSubject, conn.BoardID), data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

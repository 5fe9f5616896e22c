package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream that retains auction events.
	StreamName    = "AUCTION_EVENTS"
	subjectPrefix = "auction.events"
)

// JetStreamAPI is the subset of jetstream.JetStream used by NATSPublisher.
type JetStreamAPI interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSPublisher publishes events to a JetStream stream, one subject per event type.
type NATSPublisher struct {
	js JetStreamAPI
}

// Make sure we conform to the interface
var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher creates the auction event stream if needed and returns a
// publisher bound to it.
func NewNATSPublisher(ctx context.Context, conn *nats.Conn) (*NATSPublisher, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Auction lifecycle events",
		Subjects:    []string{subjectPrefix + ".>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Replicas:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create/update stream: %w", err)
	}

	return &NATSPublisher{js: js}, nil
}

// Subject returns the subject an event type is published on.
func Subject(t Type) string {
	return subjectPrefix + "." + string(t)
}

// Publish waits for the stream to acknowledge the event. The event ID is used
// as the message ID so redelivered publishes are deduplicated by the server.
func (p *NATSPublisher) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, Subject(event.Type), data, jetstream.WithMsgID(event.ID)); err != nil {
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}
	return nil
}

// NewNATSPublisherFromJetStream wraps an existing JetStream handle whose
// stream is already provisioned.
func NewNATSPublisherFromJetStream(js JetStreamAPI) *NATSPublisher {
	return &NATSPublisher{js: js}
}

package websockets

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chris/marketplace-auctions/pkg/events"
)

// EventForwarder turns auction events into auctionUpdate messages.
type EventForwarder struct {
	publisher Publisher
}

// NewEventForwarder creates an EventForwarder that writes to publisher.
func NewEventForwarder(publisher Publisher) *EventForwarder {
	return &EventForwarder{publisher: publisher}
}

// Publish forwards the event to websocket clients.
func (f *EventForwarder) Publish(ctx context.Context, event *events.Event) error {
	return f.publisher.Publish(ctx, MessageFromEvent(event))
}

// MessageFromEvent builds the auctionUpdate message for an event.
func MessageFromEvent(event *events.Event) Message {
	payload := AuctionUpdatePayload{
		AuctionID:  event.AuctionID,
		Event:      string(event.Type),
		BidID:      event.BidID,
		BidderID:   event.BidderID,
		WinnerID:   event.WinnerID,
		OccurredAt: event.OccurredAt,
	}
	if event.Amount != 0 {
		payload.Amount = decimal.New(event.Amount, -2).StringFixed(2)
	}
	return Message{Type: MessageTypeAuctionUpdate, Payload: payload}
}

var _ events.Publisher = (*EventForwarder)(nil)

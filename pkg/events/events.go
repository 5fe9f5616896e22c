// Package events publishes auction lifecycle events to downstream consumers
// such as winner notification and realtime fan-out.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names an auction lifecycle event.
type Type string

const (
	BidPlaced      Type = "bid.placed"
	AuctionClosed  Type = "auction.closed"
	AuctionExpired Type = "auction.expired"
	AuctionSettled Type = "auction.settled"
)

// Event is the message published after an auction change has been committed.
// Amounts are in minor currency units.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	AuctionID  string    `json:"auction_id"`
	BidID      string    `json:"bid_id,omitempty"`
	BidderID   string    `json:"bidder_id,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	WinnerID   string    `json:"winner_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New creates an event with a fresh ID.
func New(t Type, auctionID string, occurredAt time.Time) *Event {
	return &Event{
		ID:         uuid.New().String(),
		Type:       t,
		AuctionID:  auctionID,
		OccurredAt: occurredAt,
	}
}

// Publisher defines the interface for delivering events.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

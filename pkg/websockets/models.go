package websockets

import "time"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeAuctionUpdate is sent whenever a bid lands or an auction changes state.
	MessageTypeAuctionUpdate MessageType = "auctionUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// AuctionUpdatePayload is the payload for an auctionUpdate message.
// Amount is a decimal string in major units, e.g. "12.50".
type AuctionUpdatePayload struct {
	AuctionID  string    `json:"auction_id"`
	Event      string    `json:"event"`
	BidID      string    `json:"bid_id,omitempty"`
	BidderID   string    `json:"bidder_id,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	WinnerID   string    `json:"winner_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

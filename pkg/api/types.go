// Package api holds the HTTP contract of the auction service: request and
// response bodies plus the chi server glue.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// AuctionStatus defines model for AuctionStatus.
type AuctionStatus string

// Defines values for AuctionStatus.
const (
	AuctionStatusActive         AuctionStatus = "active"
	AuctionStatusPaymentPending AuctionStatus = "payment_pending"
	AuctionStatusCompleted      AuctionStatus = "completed"
	AuctionStatusEnded          AuctionStatus = "ended"
)

// BidStatus defines model for BidStatus.
type BidStatus string

// Defines values for BidStatus.
const (
	BidStatusActive  BidStatus = "active"
	BidStatusOutbid  BidStatus = "outbid"
	BidStatusWinning BidStatus = "winning"
	BidStatusWon     BidStatus = "won"
	BidStatusLost    BidStatus = "lost"
)

// NewAuction defines model for NewAuction.
type NewAuction struct {
	Title        string               `json:"title" validate:"required,max=200"`
	Description  string               `json:"description,omitempty" validate:"max=5000"`
	ContactEmail *openapi_types.Email `json:"contact_email,omitempty"`
	ContactPhone *string              `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
	StartingBid  decimal.Decimal      `json:"starting_bid"`
	ReservePrice *decimal.Decimal     `json:"reserve_price,omitempty"`
	AuctionEnd   time.Time            `json:"auction_end" validate:"required"`
}

// NewBid defines model for NewBid.
type NewBid struct {
	Amount decimal.Decimal `json:"amount"`
}

// Auction defines model for Auction.
type Auction struct {
	Id              string           `json:"id"`
	SellerId        string           `json:"seller_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Status          string           `json:"status"`
	ContactEmail    *string          `json:"contact_email,omitempty"`
	ContactPhone    *string          `json:"contact_phone,omitempty"`
	AuctionStatus   AuctionStatus    `json:"auction_status"`
	AuctionEnd      time.Time        `json:"auction_end"`
	StartingBid     decimal.Decimal  `json:"starting_bid"`
	ReservePrice    *decimal.Decimal `json:"reserve_price,omitempty"`
	CurrentBid      *decimal.Decimal `json:"current_bid,omitempty"`
	CurrentWinnerId *string          `json:"current_winner_id,omitempty"`
	BidCount        int64            `json:"bid_count"`
	WinnerId        *string          `json:"winner_id,omitempty"`
	WinningBid      *decimal.Decimal `json:"winning_bid,omitempty"`
	PaymentDeadline *time.Time       `json:"payment_deadline,omitempty"`
	PaymentReceived bool             `json:"payment_received"`
	Version         int64            `json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Bid defines model for Bid.
type Bid struct {
	Id        string          `json:"id"`
	AuctionId string          `json:"auction_id"`
	BidderId  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    BidStatus       `json:"status"`
	IsWinning bool            `json:"is_winning"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// Error defines model for Error.
type Error struct {
	Message    string           `json:"message"`
	MinimumBid *decimal.Decimal `json:"minimum_bid,omitempty"`
}

// Health defines model for Health.
type Health struct {
	Status string `json:"status"`
}

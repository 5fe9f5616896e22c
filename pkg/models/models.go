package models

import (
	"time"
)

// CategoryAuction is the only listing category the auction core operates on.
const CategoryAuction = "Auction"

// ListingStatus defines the overall lifecycle of a listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingPending  ListingStatus = "pending"
	ListingSold     ListingStatus = "sold"
	ListingExpired  ListingStatus = "expired"
	ListingArchived ListingStatus = "archived"
	ListingFlagged  ListingStatus = "flagged"
)

// AuctionStatus defines the possible states of an auction.
type AuctionStatus string

const (
	AuctionActive         AuctionStatus = "active"
	AuctionPaymentPending AuctionStatus = "payment_pending"
	AuctionCompleted      AuctionStatus = "completed"
	AuctionEnded          AuctionStatus = "ended"
)

// BidStatus defines the possible states of a bid.
type BidStatus string

const (
	BidActive  BidStatus = "active"
	BidOutbid  BidStatus = "outbid"
	BidWinning BidStatus = "winning"
	BidWon     BidStatus = "won"
	BidLost    BidStatus = "lost"
)

// Listing represents the internal domain model for an ad.
// It includes dynamodbav tags for marshalling.
type Listing struct {
	ID             string          `json:"id" dynamodbav:"id"`
	SellerID       string          `json:"seller_id" dynamodbav:"seller_id"`
	Title          string          `json:"title" dynamodbav:"title"`
	Description    string          `json:"description" dynamodbav:"description"`
	Category       string          `json:"category" dynamodbav:"category"`
	Status         ListingStatus   `json:"status" dynamodbav:"status"`
	ContactEmail   string          `json:"contact_email" dynamodbav:"contact_email"`
	ContactPhone   string          `json:"contact_phone" dynamodbav:"contact_phone"`
	ContactVisible bool            `json:"contact_visible" dynamodbav:"contact_visible"`
	Auction        *AuctionDetails `json:"auction,omitempty" dynamodbav:"auction,omitempty"`
	Version        int64           `json:"version" dynamodbav:"version"`
	CreatedAt      time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" dynamodbav:"updated_at"`
}

// AuctionDetails is the auction sub-record embedded in an auction listing.
// Amounts are in minor currency units.
type AuctionDetails struct {
	AuctionEnd      time.Time     `json:"auction_end" dynamodbav:"auction_end"`
	StartingBid     int64         `json:"starting_bid" dynamodbav:"starting_bid"`
	ReservePrice    *int64        `json:"reserve_price,omitempty" dynamodbav:"reserve_price,omitempty"`
	CurrentBid      *int64        `json:"current_bid,omitempty" dynamodbav:"current_bid,omitempty"`
	CurrentWinnerID string        `json:"current_winner_id,omitempty" dynamodbav:"current_winner_id,omitempty"`
	CurrentBidID    string        `json:"current_bid_id,omitempty" dynamodbav:"current_bid_id,omitempty"`
	BidCount        int64         `json:"bid_count" dynamodbav:"bid_count"`
	AuctionStatus   AuctionStatus `json:"auction_status" dynamodbav:"auction_status"`
	WinnerID        string        `json:"winner_id,omitempty" dynamodbav:"winner_id,omitempty"`
	WinningBid      *int64        `json:"winning_bid,omitempty" dynamodbav:"winning_bid,omitempty"`
	PaymentDeadline *time.Time    `json:"payment_deadline,omitempty" dynamodbav:"payment_deadline,omitempty"`
	PaymentReceived bool          `json:"payment_received" dynamodbav:"payment_received"`
}

// IsAuction reports whether the listing participates in the auction core.
func (l *Listing) IsAuction() bool {
	return l.Category == CategoryAuction && l.Auction != nil
}

// Bid represents a single bid recorded in the bid ledger.
type Bid struct {
	ID        string    `json:"id" dynamodbav:"id"`
	AuctionID string    `json:"auction_id" dynamodbav:"auction_id"`
	BidderID  string    `json:"bidder_id" dynamodbav:"bidder_id"`
	BidAmount int64     `json:"bid_amount" dynamodbav:"bid_amount"`
	Status    BidStatus `json:"status" dynamodbav:"status"`
	IsWinning bool      `json:"is_winning" dynamodbav:"is_winning"`
	PlacedAt  time.Time `json:"placed_at" dynamodbav:"placed_at"`
}

// ListingFilter selects listings for the sweep.
type ListingFilter struct {
	Category         string
	AuctionStatus    AuctionStatus
	AuctionEndBefore time.Time
}

// Matches reports whether the listing satisfies the filter. AuctionEndBefore is inclusive.
func (f ListingFilter) Matches(l *Listing) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.AuctionStatus == "" && f.AuctionEndBefore.IsZero() {
		return true
	}
	if l.Auction == nil {
		return false
	}
	if f.AuctionStatus != "" && l.Auction.AuctionStatus != f.AuctionStatus {
		return false
	}
	if !f.AuctionEndBefore.IsZero() && l.Auction.AuctionEnd.After(f.AuctionEndBefore) {
		return false
	}
	return true
}

// BidFilter selects the bids of one auction, optionally excluding a single bid.
type BidFilter struct {
	AuctionID string
	ExcludeID string
}

// BidPatch is applied to every bid matched by a BidFilter.
type BidPatch struct {
	IsWinning bool
	Status    BidStatus
}

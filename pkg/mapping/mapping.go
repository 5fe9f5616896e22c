package mapping

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/chris/marketplace-auctions/pkg/api"
	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/models"
)

// ErrInvalidAmount is returned for amounts that cannot be represented in minor units.
var ErrInvalidAmount = errors.New("amount must have at most two decimal places")

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// ToMinorUnits converts a decimal amount in major units to minor units.
// Sign is not checked here; the auction rules reject non-positive amounts.
func ToMinorUnits(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(2)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrInvalidAmount
	}
	if shifted.Abs().GreaterThan(maxMinor) {
		return 0, errors.New("amount is too large")
	}
	return shifted.IntPart(), nil
}

// FromMinorUnits converts minor units to a decimal amount in major units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func fromMinorPtr(minor *int64) *decimal.Decimal {
	if minor == nil {
		return nil
	}
	d := FromMinorUnits(*minor)
	return &d
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToDomainNewAuction converts an API NewAuction to the auction creation input.
func ToDomainNewAuction(sellerID string, in *api.NewAuction) (auction.NewAuction, error) {
	startingBid, err := ToMinorUnits(in.StartingBid)
	if err != nil {
		return auction.NewAuction{}, err
	}

	out := auction.NewAuction{
		SellerID:    sellerID,
		Title:       in.Title,
		Description: in.Description,
		StartingBid: startingBid,
		AuctionEnd:  in.AuctionEnd,
	}
	if in.ContactEmail != nil {
		out.ContactEmail = string(*in.ContactEmail)
	}
	if in.ContactPhone != nil {
		out.ContactPhone = *in.ContactPhone
	}
	if in.ReservePrice != nil {
		reserve, err := ToMinorUnits(*in.ReservePrice)
		if err != nil {
			return auction.NewAuction{}, err
		}
		out.ReservePrice = &reserve
	}
	return out, nil
}

// ToApiAuction converts a domain auction listing to an API Auction.
// Seller contact details are only included when the listing makes them visible.
func ToApiAuction(l *models.Listing) *api.Auction {
	out := &api.Auction{
		Id:          l.ID,
		SellerId:    l.SellerID,
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.ContactVisible {
		out.ContactEmail = optional(l.ContactEmail)
		out.ContactPhone = optional(l.ContactPhone)
	}

	if d := l.Auction; d != nil {
		out.AuctionStatus = api.AuctionStatus(d.AuctionStatus)
		out.AuctionEnd = d.AuctionEnd
		out.StartingBid = FromMinorUnits(d.StartingBid)
		out.ReservePrice = fromMinorPtr(d.ReservePrice)
		out.CurrentBid = fromMinorPtr(d.CurrentBid)
		out.CurrentWinnerId = optional(d.CurrentWinnerID)
		out.BidCount = d.BidCount
		out.WinnerId = optional(d.WinnerID)
		out.WinningBid = fromMinorPtr(d.WinningBid)
		out.PaymentDeadline = d.PaymentDeadline
		out.PaymentReceived = d.PaymentReceived
	}
	return out
}

// ToApiBid converts a domain Bid to an API Bid.
func ToApiBid(b *models.Bid) *api.Bid {
	return &api.Bid{
		Id:        b.ID,
		AuctionId: b.AuctionID,
		BidderId:  b.BidderID,
		Amount:    FromMinorUnits(b.BidAmount),
		Status:    api.BidStatus(b.Status),
		IsWinning: b.IsWinning,
		PlacedAt:  b.PlacedAt,
	}
}

// ToApiBids converts a slice of domain bids, preserving order.
func ToApiBids(bids []*models.Bid) []*api.Bid {
	out := make([]*api.Bid, len(bids))
	for i, b := range bids {
		out[i] = ToApiBid(b)
	}
	return out
}

package auction

import (
	"strings"
	"time"

	"github.com/chris/marketplace-auctions/pkg/models"
)

// NewAuction holds the seller-supplied fields of a new auction listing.
type NewAuction struct {
	SellerID     string
	Title        string
	Description  string
	ContactEmail string
	ContactPhone string
	StartingBid  int64
	ReservePrice *int64
	AuctionEnd   time.Time
}

// ValidateNewAuction applies the creation rules for auction listings.
func ValidateNewAuction(in NewAuction, now time.Time) error {
	if strings.TrimSpace(in.SellerID) == "" {
		return newError(ErrInvalidArgument, "seller is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return newError(ErrInvalidArgument, "title is required")
	}
	if in.StartingBid <= 0 {
		return newError(ErrInvalidArgument, "starting bid must be positive")
	}
	if in.ReservePrice != nil && *in.ReservePrice <= 0 {
		return newError(ErrInvalidArgument, "reserve price must be positive")
	}
	if in.AuctionEnd.IsZero() {
		return newError(ErrInvalidArgument, "auction end is required")
	}
	if !in.AuctionEnd.After(now) {
		return newError(ErrInvalidArgument, "auction end must be in the future")
	}
	return nil
}

// NewListing builds the active listing for a validated auction.
func NewListing(id string, in NewAuction, now time.Time) *models.Listing {
	return &models.Listing{
		ID:           id,
		SellerID:     in.SellerID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     models.CategoryAuction,
		Status:       models.ListingActive,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Auction: &models.AuctionDetails{
			AuctionEnd:    in.AuctionEnd.UTC(),
			StartingBid:   in.StartingBid,
			ReservePrice:  in.ReservePrice,
			AuctionStatus: models.AuctionActive,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

package storage

import (
	"context"

	"github.com/chris/marketplace-auctions/pkg/models"
)

// ListingReader provides read access to listings.
type ListingReader interface {
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	// FindListings returns every listing matching the filter. The result is a
	// snapshot; callers must re-read a listing before acting on it.
	FindListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error)
}

// ListingWriter persists listings. Writes are guarded by the listing version:
// the caller passes the listing with the version it read, the store writes
// version+1 and updates the struct on success. A stale version yields ErrConflict.
type ListingWriter interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	SaveListing(ctx context.Context, listing *models.Listing) error
}

// BidReader provides read access to the bid ledger.
type BidReader interface {
	// FindTopBid returns the highest bid of an auction, or nil when there is none.
	FindTopBid(ctx context.Context, auctionID string) (*models.Bid, error)
	// FindWinningBid returns the bid flagged as winning, or nil when there is none.
	FindWinningBid(ctx context.Context, auctionID string) (*models.Bid, error)
	// FindBids returns the bids of an auction, highest amount first.
	FindBids(ctx context.Context, auctionID string) ([]*models.Bid, error)
}

// BidWriter updates bids in bulk.
type BidWriter interface {
	UpdateBidsBulk(ctx context.Context, filter models.BidFilter, patch models.BidPatch) (int, error)
}

// AuctionCommitter applies the multi-record writes of the auction lifecycle
// atomically. Each operation is guarded by the listing version.
type AuctionCommitter interface {
	// RecordBid inserts bid, demotes previousBidID (if any) to outbid and saves listing.
	RecordBid(ctx context.Context, listing *models.Listing, bid *models.Bid, previousBidID string) error
	// CloseAuction saves the closed listing, marks winner as winning and every
	// other bid of the auction as outbid.
	CloseAuction(ctx context.Context, listing *models.Listing, winner *models.Bid) error
	// SettleAuction saves the completed listing and marks bid as won.
	SettleAuction(ctx context.Context, listing *models.Listing, bid *models.Bid) error
}

// Storage defines the root interface for the entire data layer.
// Components should depend on the more granular interfaces instead of this one.
type Storage interface {
	ListingReader
	ListingWriter
	BidReader
	BidWriter
	AuctionCommitter
}

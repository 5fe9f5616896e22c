package service

import (
	"context"
	"fmt"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/models"
)

// CreateAuction validates and stores a new active auction listing.
func (s *AuctionService) CreateAuction(ctx context.Context, in auction.NewAuction) (*models.Listing, error) {
	now := s.clock.Now()
	if err := auction.ValidateNewAuction(in, now); err != nil {
		return nil, err
	}

	listing := auction.NewListing(s.newID(), in, now)
	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}

	s.logger.InfoContext(ctx, "auction created",
		"auction_id", listing.ID, "seller_id", listing.SellerID, "auction_end", listing.Auction.AuctionEnd)
	return listing, nil
}

// GetAuction returns an auction listing.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*models.Listing, error) {
	listing, err := s.getAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !listing.IsAuction() {
		return nil, auction.NotAnAuction(auctionID)
	}
	return listing, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/models"
)

// PlaceBid validates and records a bid of amount (minor units) by bidderID.
// On success the new bid is the only winning bid of the auction.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*models.Bid, error) {
	unlock := s.locks.Lock(auctionID)
	defer unlock()

	var bid *models.Bid
	err := s.retryOnConflict(ctx, "place_bid", auctionID, func() error {
		listing, err := s.getAuction(ctx, auctionID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if err := auction.ValidateBid(listing, amount, now); err != nil {
			return err
		}

		previousBidID := listing.Auction.CurrentBidID
		bid = &models.Bid{
			ID:        s.newID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			BidAmount: amount,
			Status:    models.BidWinning,
			IsWinning: true,
			PlacedAt:  now,
		}
		auction.ApplyBid(listing, bid, now)
		return s.store.RecordBid(ctx, listing, bid, previousBidID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bid placed",
		"auction_id", auctionID, "bid_id", bid.ID, "bidder_id", bidderID, "amount", amount)

	event := events.New(events.BidPlaced, auctionID, bid.PlacedAt)
	event.BidID = bid.ID
	event.BidderID = bidderID
	event.Amount = amount
	s.publish(ctx, event)

	return bid, nil
}

// ListBids returns the bids of an auction, highest amount first.
func (s *AuctionService) ListBids(ctx context.Context, auctionID string) ([]*models.Bid, error) {
	if _, err := s.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	bids, err := s.store.FindBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

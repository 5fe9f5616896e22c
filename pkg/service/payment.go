package service

import (
	"context"
	"fmt"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/models"
)

// ConfirmPayment completes a payment-pending auction on behalf of its winner
// and returns the sold listing with the seller contact revealed.
func (s *AuctionService) ConfirmPayment(ctx context.Context, auctionID, requesterID string) (*models.Listing, error) {
	unlock := s.locks.Lock(auctionID)
	defer unlock()

	var (
		listing *models.Listing
		winning *models.Bid
	)
	err := s.retryOnConflict(ctx, "confirm_payment", auctionID, func() error {
		var err error
		listing, err = s.getAuction(ctx, auctionID)
		if err != nil {
			return err
		}
		if !listing.IsAuction() || listing.Auction.AuctionStatus != models.AuctionPaymentPending {
			return auction.NotAwaitingPayment()
		}

		winning, err = s.store.FindWinningBid(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("failed to find winning bid: %w", err)
		}
		if winning == nil {
			s.logger.ErrorContext(ctx, "payment-pending auction has no winning bid", "auction_id", auctionID)
			return auction.ErrNoWinningBid
		}
		if winning.BidderID != requesterID {
			return auction.NotWinningBidder()
		}

		if err := auction.Settle(listing, winning, s.clock.Now()); err != nil {
			return err
		}
		return s.store.SettleAuction(ctx, listing, winning)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "auction payment confirmed",
		"auction_id", auctionID, "winner_id", winning.BidderID, "amount", winning.BidAmount)
	event := events.New(events.AuctionSettled, auctionID, listing.UpdatedAt)
	event.BidID = winning.ID
	event.WinnerID = winning.BidderID
	event.Amount = winning.BidAmount
	s.publish(ctx, event)

	return listing, nil
}

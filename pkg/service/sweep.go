package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

// SweepResult counts what one sweep did with the auctions it matched.
type SweepResult struct {
	Matched int
	Closed  int // moved to payment_pending with a winner
	Expired int // ended without bids
	Skipped int // no longer due when re-read, or claimed by another sweeper
	Failed  int
}

type sweepOutcome int

const (
	outcomeSkipped sweepOutcome = iota
	outcomeClosed
	outcomeExpired
)

// Sweep closes every active auction whose end time has passed. Each auction is
// processed independently; a failure on one is logged and counted without
// stopping the others. Only a failure to query the batch is returned.
func (s *AuctionService) Sweep(ctx context.Context) (SweepResult, error) {
	now := s.clock.Now()
	due, err := s.store.FindListings(ctx, models.ListingFilter{
		Category:         models.CategoryAuction,
		AuctionStatus:    models.AuctionActive,
		AuctionEndBefore: now,
	})
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to query due auctions: %w", err)
	}

	result := SweepResult{Matched: len(due)}
	for _, listing := range due {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "auction sweep interrupted", "error", err)
			break
		}

		outcome, err := s.closeAuction(ctx, listing.ID, now)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "failed to close auction", "auction_id", listing.ID, "error", err)
			continue
		}
		switch outcome {
		case outcomeClosed:
			result.Closed++
		case outcomeExpired:
			result.Expired++
		default:
			result.Skipped++
		}
	}

	if result.Matched > 0 {
		s.logger.InfoContext(ctx, "auction sweep finished",
			"matched", result.Matched, "closed", result.Closed, "expired", result.Expired,
			"skipped", result.Skipped, "failed", result.Failed)
	}
	return result, nil
}

// closeAuction re-reads one auction under its lock and closes it if it is
// still due. The write is guarded by the listing version, so of two
// overlapping sweepers only one claims the auction.
func (s *AuctionService) closeAuction(ctx context.Context, auctionID string, now time.Time) (sweepOutcome, error) {
	unlock := s.locks.Lock(auctionID)
	defer unlock()

	listing, err := s.store.GetListing(ctx, auctionID)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to get listing: %w", err)
	}
	if !auction.IsDue(listing, now) {
		return outcomeSkipped, nil
	}

	top, err := s.store.FindTopBid(ctx, auctionID)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to find top bid: %w", err)
	}
	// The bid index can lag the listing; close only once it agrees.
	if current := listing.Auction.CurrentBidID; current != "" && (top == nil || top.ID != current) {
		s.logger.WarnContext(ctx, "top bid does not match listing yet, leaving auction to the next run",
			"auction_id", auctionID, "current_bid_id", current)
		return outcomeSkipped, nil
	}
	if err := auction.Close(listing, top, now, s.paymentWindow); err != nil {
		return outcomeSkipped, err
	}

	err = s.store.CloseAuction(ctx, listing, top)
	if errors.Is(err, storage.ErrConflict) {
		s.logger.InfoContext(ctx, "auction changed during sweep, leaving it to the next run", "auction_id", auctionID)
		return outcomeSkipped, nil
	}
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to persist closed auction: %w", err)
	}

	if top == nil {
		s.logger.InfoContext(ctx, "auction expired without bids", "auction_id", auctionID)
		s.publish(ctx, events.New(events.AuctionExpired, auctionID, now))
		return outcomeExpired, nil
	}

	s.logger.InfoContext(ctx, "auction closed",
		"auction_id", auctionID, "winner_id", top.BidderID, "amount", top.BidAmount,
		"payment_deadline", listing.Auction.PaymentDeadline)
	event := events.New(events.AuctionClosed, auctionID, now)
	event.BidID = top.ID
	event.WinnerID = top.BidderID
	event.Amount = top.BidAmount
	s.publish(ctx, event)
	return outcomeClosed, nil
}

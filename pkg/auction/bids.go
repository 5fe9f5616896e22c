package auction

import (
	"time"

	"github.com/chris/marketplace-auctions/pkg/models"
)

// ValidateBid checks that amount may be placed on the listing at now.
// The listing must already be known to exist.
func ValidateBid(l *models.Listing, amount int64, now time.Time) error {
	if !l.IsAuction() {
		return NotAnAuction(l.ID)
	}
	d := l.Auction
	if d.AuctionStatus != models.AuctionActive {
		return newError(ErrInvalidState, "auction is not active")
	}
	if HasEnded(d, now) {
		return newError(ErrInvalidState, "auction has already ended")
	}
	if minimum := MinimumBid(d); amount <= minimum {
		return BidTooLow(minimum)
	}
	return nil
}

// ApplyBid records an accepted bid on the listing's auction details.
func ApplyBid(l *models.Listing, bid *models.Bid, now time.Time) {
	amount := bid.BidAmount
	d := l.Auction
	d.CurrentBid = &amount
	d.CurrentWinnerID = bid.BidderID
	d.CurrentBidID = bid.ID
	d.BidCount++
	l.UpdatedAt = now
}

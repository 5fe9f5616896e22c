package auction

import (
	"time"

	"github.com/chris/marketplace-auctions/pkg/models"
)

// DefaultPaymentWindow is how long a winner has to confirm payment.
const DefaultPaymentWindow = 48 * time.Hour

var transitions = map[models.AuctionStatus][]models.AuctionStatus{
	models.AuctionActive:         {models.AuctionEnded, models.AuctionPaymentPending},
	models.AuctionPaymentPending: {models.AuctionCompleted},
}

// CanTransition reports whether an auction may move from one status to another.
// Transitions only ever move forward.
func CanTransition(from, to models.AuctionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MinimumBid returns the amount a new bid must strictly exceed.
func MinimumBid(d *models.AuctionDetails) int64 {
	if d.CurrentBid != nil && *d.CurrentBid > d.StartingBid {
		return *d.CurrentBid
	}
	return d.StartingBid
}

// HasEnded reports whether the auction deadline has been reached at now.
func HasEnded(d *models.AuctionDetails, now time.Time) bool {
	return !now.Before(d.AuctionEnd)
}

// IsDue reports whether the sweep should close the listing at now.
func IsDue(l *models.Listing, now time.Time) bool {
	return l.IsAuction() && l.Auction.AuctionStatus == models.AuctionActive && HasEnded(l.Auction, now)
}

// Close moves an ended auction out of the active state. With no top bid the
// auction ends without a winner and the listing expires; otherwise the top bid
// wins and the auction waits for payment until now+paymentWindow.
// The reserve price is not consulted.
func Close(l *models.Listing, top *models.Bid, now time.Time, paymentWindow time.Duration) error {
	if !l.IsAuction() {
		return NotAnAuction(l.ID)
	}
	d := l.Auction

	if top == nil {
		if !CanTransition(d.AuctionStatus, models.AuctionEnded) {
			return newError(ErrInvalidState, "auction is not active")
		}
		d.AuctionStatus = models.AuctionEnded
		l.Status = models.ListingExpired
		l.ContactVisible = true
		l.UpdatedAt = now
		return nil
	}

	if !CanTransition(d.AuctionStatus, models.AuctionPaymentPending) {
		return newError(ErrInvalidState, "auction is not active")
	}
	amount := top.BidAmount
	deadline := now.Add(paymentWindow)
	d.CurrentBid = &amount
	d.CurrentWinnerID = top.BidderID
	d.CurrentBidID = top.ID
	d.AuctionStatus = models.AuctionPaymentPending
	d.PaymentDeadline = &deadline
	l.ContactVisible = false
	l.UpdatedAt = now

	top.IsWinning = true
	top.Status = models.BidWinning
	return nil
}

// Settle completes a payment-pending auction for its winning bid.
func Settle(l *models.Listing, winning *models.Bid, now time.Time) error {
	if !l.IsAuction() {
		return NotAnAuction(l.ID)
	}
	d := l.Auction
	if !CanTransition(d.AuctionStatus, models.AuctionCompleted) {
		return NotAwaitingPayment()
	}

	amount := winning.BidAmount
	d.AuctionStatus = models.AuctionCompleted
	d.WinnerID = winning.BidderID
	d.WinningBid = &amount
	d.PaymentReceived = true
	l.Status = models.ListingSold
	l.ContactVisible = true
	l.UpdatedAt = now

	winning.Status = models.BidWon
	return nil
}

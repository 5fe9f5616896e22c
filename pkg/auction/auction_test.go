package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"

	"github.com/chris/marketplace-auctions/pkg/models"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func amount(v int64) *int64 { return &v }

func activeListing() *models.Listing {
	return &models.Listing{
		ID:       "listing-1",
		Category: models.CategoryAuction,
		Status:   models.ListingActive,
		Auction: &models.AuctionDetails{
			AuctionEnd:    now.Add(time.Hour),
			StartingBid:   10000,
			AuctionStatus: models.AuctionActive,
		},
	}
}

func TestCanTransition(t *testing.T) {
	check.True(t, CanTransition(models.AuctionActive, models.AuctionEnded))
	check.True(t, CanTransition(models.AuctionActive, models.AuctionPaymentPending))
	check.True(t, CanTransition(models.AuctionPaymentPending, models.AuctionCompleted))

	// Nothing moves backward or skips payment.
	check.False(t, CanTransition(models.AuctionPaymentPending, models.AuctionActive))
	check.False(t, CanTransition(models.AuctionEnded, models.AuctionActive))
	check.False(t, CanTransition(models.AuctionCompleted, models.AuctionPaymentPending))
	check.False(t, CanTransition(models.AuctionActive, models.AuctionCompleted))
	check.False(t, CanTransition(models.AuctionEnded, models.AuctionCompleted))
}

func TestMinimumBid(t *testing.T) {
	d := &models.AuctionDetails{StartingBid: 10000}
	check.Equal(t, int64(10000), MinimumBid(d))

	d.CurrentBid = amount(15000)
	check.Equal(t, int64(15000), MinimumBid(d))

	// A current bid below the starting bid never lowers the floor.
	d.CurrentBid = amount(5000)
	check.Equal(t, int64(10000), MinimumBid(d))
}

func TestValidateBid_Order(t *testing.T) {
	t.Run("not an auction", func(t *testing.T) {
		l := activeListing()
		l.Category = "Vehicles"
		err := ValidateBid(l, 20000, now)
		check.True(t, errors.Is(err, ErrInvalidOperation))
	})

	t.Run("not active", func(t *testing.T) {
		l := activeListing()
		l.Auction.AuctionStatus = models.AuctionPaymentPending
		err := ValidateBid(l, 20000, now)
		check.True(t, errors.Is(err, ErrInvalidState))
		check.Equal(t, "auction is not active", err.Error())
	})

	t.Run("already ended", func(t *testing.T) {
		l := activeListing()
		err := ValidateBid(l, 20000, l.Auction.AuctionEnd)
		check.True(t, errors.Is(err, ErrInvalidState))
		check.Equal(t, "auction has already ended", err.Error())
	})

	t.Run("ended check precedes amount check", func(t *testing.T) {
		l := activeListing()
		err := ValidateBid(l, 1, now.Add(2*time.Hour))
		check.True(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("equal to starting bid", func(t *testing.T) {
		l := activeListing()
		err := ValidateBid(l, 10000, now)
		check.True(t, errors.Is(err, ErrInvalidArgument))

		var aerr *Error
		check.True(t, errors.As(err, &aerr))
		check.Equal(t, int64(10000), aerr.MinimumBid)
		check.Equal(t, "bid must be greater than 100.00", aerr.Error())
	})

	t.Run("below current bid", func(t *testing.T) {
		l := activeListing()
		l.Auction.CurrentBid = amount(15000)
		err := ValidateBid(l, 12000, now)

		var aerr *Error
		check.True(t, errors.As(err, &aerr))
		check.Equal(t, int64(15000), aerr.MinimumBid)
		check.Equal(t, "bid must be greater than 150.00", aerr.Error())
	})

	t.Run("accepted", func(t *testing.T) {
		l := activeListing()
		check.NoError(t, ValidateBid(l, 10001, now))
	})
}

func TestApplyBid(t *testing.T) {
	l := activeListing()
	bid := &models.Bid{ID: "bid-1", BidderID: "alice", BidAmount: 15000}

	ApplyBid(l, bid, now)

	check.Equal(t, int64(15000), *l.Auction.CurrentBid)
	check.Equal(t, "alice", l.Auction.CurrentWinnerID)
	check.Equal(t, "bid-1", l.Auction.CurrentBidID)
	check.Equal(t, int64(1), l.Auction.BidCount)
	check.Equal(t, now, l.UpdatedAt)
}

func TestClose_NoBids(t *testing.T) {
	l := activeListing()

	err := Close(l, nil, now, DefaultPaymentWindow)

	check.NoError(t, err)
	check.Equal(t, models.AuctionEnded, l.Auction.AuctionStatus)
	check.Equal(t, models.ListingExpired, l.Status)
	check.True(t, l.ContactVisible)
	check.True(t, l.Auction.PaymentDeadline == nil)
}

func TestClose_WithWinner(t *testing.T) {
	l := activeListing()
	l.ContactVisible = true
	top := &models.Bid{ID: "bid-2", BidderID: "bob", BidAmount: 25000, Status: models.BidOutbid}

	err := Close(l, top, now, DefaultPaymentWindow)

	check.NoError(t, err)
	check.Equal(t, models.AuctionPaymentPending, l.Auction.AuctionStatus)
	check.Equal(t, int64(25000), *l.Auction.CurrentBid)
	check.Equal(t, "bob", l.Auction.CurrentWinnerID)
	check.Equal(t, "bid-2", l.Auction.CurrentBidID)
	check.Equal(t, now.Add(48*time.Hour), *l.Auction.PaymentDeadline)
	check.False(t, l.ContactVisible)
	check.Equal(t, models.ListingActive, l.Status)
	check.True(t, top.IsWinning)
	check.Equal(t, models.BidWinning, top.Status)
}

func TestClose_ReservePriceIsInformational(t *testing.T) {
	l := activeListing()
	l.Auction.ReservePrice = amount(50000)
	top := &models.Bid{ID: "bid-3", BidderID: "carol", BidAmount: 12000}

	check.NoError(t, Close(l, top, now, DefaultPaymentWindow))
	check.Equal(t, models.AuctionPaymentPending, l.Auction.AuctionStatus)
}

func TestClose_RejectsNonActive(t *testing.T) {
	for _, status := range []models.AuctionStatus{models.AuctionEnded, models.AuctionPaymentPending, models.AuctionCompleted} {
		l := activeListing()
		l.Auction.AuctionStatus = status
		check.True(t, errors.Is(Close(l, nil, now, DefaultPaymentWindow), ErrInvalidState))
		check.True(t, errors.Is(Close(l, &models.Bid{BidAmount: 1}, now, DefaultPaymentWindow), ErrInvalidState))
		check.Equal(t, status, l.Auction.AuctionStatus)
	}
}

func TestSettle(t *testing.T) {
	l := activeListing()
	l.Auction.AuctionStatus = models.AuctionPaymentPending
	winning := &models.Bid{ID: "bid-4", BidderID: "dave", BidAmount: 30000, Status: models.BidWinning, IsWinning: true}

	err := Settle(l, winning, now)

	check.NoError(t, err)
	check.Equal(t, models.AuctionCompleted, l.Auction.AuctionStatus)
	check.Equal(t, "dave", l.Auction.WinnerID)
	check.Equal(t, int64(30000), *l.Auction.WinningBid)
	check.True(t, l.Auction.PaymentReceived)
	check.Equal(t, models.ListingSold, l.Status)
	check.True(t, l.ContactVisible)
	check.Equal(t, models.BidWon, winning.Status)
	check.True(t, winning.IsWinning)
}

func TestSettle_NotAwaitingPayment(t *testing.T) {
	l := activeListing()
	err := Settle(l, &models.Bid{}, now)
	check.True(t, errors.Is(err, ErrInvalidState))
	check.Equal(t, "auction not awaiting payment", err.Error())
}

func TestValidateNewAuction(t *testing.T) {
	valid := NewAuction{
		SellerID:    "seller-1",
		Title:       "Vintage bike",
		StartingBid: 10000,
		AuctionEnd:  now.Add(24 * time.Hour),
	}
	check.NoError(t, ValidateNewAuction(valid, now))

	cases := map[string]func(in *NewAuction){
		"missing seller":     func(in *NewAuction) { in.SellerID = "" },
		"blank title":        func(in *NewAuction) { in.Title = "  " },
		"zero starting bid":  func(in *NewAuction) { in.StartingBid = 0 },
		"negative reserve":   func(in *NewAuction) { in.ReservePrice = amount(-1) },
		"missing end":        func(in *NewAuction) { in.AuctionEnd = time.Time{} },
		"end in the past":    func(in *NewAuction) { in.AuctionEnd = now.Add(-time.Minute) },
		"end exactly at now": func(in *NewAuction) { in.AuctionEnd = now },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			check.True(t, errors.Is(ValidateNewAuction(in, now), ErrInvalidArgument))
		})
	}
}

func TestNewListing(t *testing.T) {
	in := NewAuction{SellerID: "seller-1", Title: "Lamp", StartingBid: 500, AuctionEnd: now.Add(time.Hour)}
	l := NewListing("listing-9", in, now)

	check.Equal(t, models.CategoryAuction, l.Category)
	check.Equal(t, models.ListingActive, l.Status)
	check.False(t, l.ContactVisible)
	check.Equal(t, models.AuctionActive, l.Auction.AuctionStatus)
	check.True(t, l.Auction.CurrentBid == nil)
	check.Equal(t, int64(0), l.Auction.BidCount)
}

func TestErrorKinds(t *testing.T) {
	check.True(t, errors.Is(NotFound("x"), ErrNotFound))
	check.True(t, errors.Is(ErrNoWinningBid, ErrInvalidState))
	check.Equal(t, "1234.50", FormatAmount(123450))
}

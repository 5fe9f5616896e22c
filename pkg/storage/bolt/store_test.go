package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

var (
	ctx = context.Background()
	t0  = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "auctions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newListing(id string) *models.Listing {
	return &models.Listing{
		ID:       id,
		SellerID: "seller-1",
		Title:    "Vintage bike",
		Category: models.CategoryAuction,
		Status:   models.ListingActive,
		Auction: &models.AuctionDetails{
			AuctionEnd:    t0.Add(time.Hour),
			StartingBid:   10000,
			AuctionStatus: models.AuctionActive,
		},
	}
}

func newBid(id, auctionID string, amount int64, offset time.Duration) *models.Bid {
	return &models.Bid{
		ID:        id,
		AuctionID: auctionID,
		BidderID:  "bidder-" + id,
		BidAmount: amount,
		Status:    models.BidWinning,
		IsWinning: true,
		PlacedAt:  t0.Add(offset),
	}
}

func TestListings(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")

	require.NoError(t, s.CreateListing(ctx, listing))
	assert.Equal(t, int64(1), listing.Version)
	assert.ErrorIs(t, s.CreateListing(ctx, newListing("l1")), storage.ErrConflict)

	got, err := s.GetListing(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Vintage bike", got.Title)
	assert.Equal(t, int64(1), got.Version)

	_, err = s.GetListing(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrListingNotFound)
}

func TestSaveListingVersionGuard(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateListing(ctx, newListing("l1")))

	first, _ := s.GetListing(ctx, "l1")
	second, _ := s.GetListing(ctx, "l1")

	first.Title = "first"
	require.NoError(t, s.SaveListing(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Title = "second"
	assert.ErrorIs(t, s.SaveListing(ctx, second), storage.ErrConflict)
	assert.Equal(t, int64(1), second.Version)

	got, _ := s.GetListing(ctx, "l1")
	assert.Equal(t, "first", got.Title)
}

func TestFindListings(t *testing.T) {
	s := newTestStore(t)

	due := newListing("due")
	due.Auction.AuctionEnd = t0
	later := newListing("later")
	closed := newListing("closed")
	closed.Auction.AuctionEnd = t0.Add(-time.Hour)
	closed.Auction.AuctionStatus = models.AuctionEnded
	plain := &models.Listing{ID: "plain", Category: "Vehicles", Status: models.ListingActive}
	for _, l := range []*models.Listing{due, later, closed, plain} {
		require.NoError(t, s.CreateListing(ctx, l))
	}

	found, err := s.FindListings(ctx, models.ListingFilter{
		Category:         models.CategoryAuction,
		AuctionStatus:    models.AuctionActive,
		AuctionEndBefore: t0,
	})

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "due", found[0].ID)
}

func TestRecordBid(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")
	require.NoError(t, s.CreateListing(ctx, listing))

	b1 := newBid("b1", "l1", 15000, 0)
	require.NoError(t, s.RecordBid(ctx, listing, b1, ""))
	b2 := newBid("b2", "l1", 20000, time.Minute)
	require.NoError(t, s.RecordBid(ctx, listing, b2, "b1"))
	assert.Equal(t, int64(3), listing.Version)

	bids, err := s.FindBids(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, "b2", bids[0].ID)
	assert.True(t, bids[0].IsWinning)
	assert.False(t, bids[1].IsWinning)
	assert.Equal(t, models.BidOutbid, bids[1].Status)

	top, err := s.FindTopBid(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "b2", top.ID)

	winning, err := s.FindWinningBid(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "b2", winning.ID)
}

func TestRecordBidConflictRollsBack(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")
	require.NoError(t, s.CreateListing(ctx, listing))

	stale := *listing
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b1", "l1", 15000, 0), ""))

	err := s.RecordBid(ctx, &stale, newBid("b2", "l1", 16000, time.Minute), "")

	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.Equal(t, int64(1), stale.Version)
	bids, _ := s.FindBids(ctx, "l1")
	assert.Len(t, bids, 1)
}

func TestFindBidsEmpty(t *testing.T) {
	s := newTestStore(t)

	bids, err := s.FindBids(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, bids)

	top, err := s.FindTopBid(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestUpdateBidsBulk(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")
	require.NoError(t, s.CreateListing(ctx, listing))
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b1", "l1", 15000, 0), ""))
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b2", "l1", 20000, time.Minute), "b1"))

	count, err := s.UpdateBidsBulk(ctx, models.BidFilter{AuctionID: "l1"}, models.BidPatch{Status: models.BidLost})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.UpdateBidsBulk(ctx, models.BidFilter{AuctionID: "l1"}, models.BidPatch{Status: models.BidLost})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCloseAndSettle(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")
	require.NoError(t, s.CreateListing(ctx, listing))
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b1", "l1", 15000, 0), ""))

	winner, err := s.FindTopBid(ctx, "l1")
	require.NoError(t, err)
	listing.Auction.AuctionStatus = models.AuctionPaymentPending
	require.NoError(t, s.CloseAuction(ctx, listing, winner))

	winner.Status = models.BidWon
	listing.Auction.AuctionStatus = models.AuctionCompleted
	require.NoError(t, s.SettleAuction(ctx, listing, winner))

	got, _ := s.GetListing(ctx, "l1")
	assert.Equal(t, models.AuctionCompleted, got.Auction.AuctionStatus)
	assert.Equal(t, int64(4), got.Version)
	won, _ := s.FindWinningBid(ctx, "l1")
	assert.Equal(t, models.BidWon, won.Status)
}

func TestSettleRequiresWinningBid(t *testing.T) {
	s := newTestStore(t)
	listing := newListing("l1")
	require.NoError(t, s.CreateListing(ctx, listing))
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b1", "l1", 15000, 0), ""))
	require.NoError(t, s.RecordBid(ctx, listing, newBid("b2", "l1", 20000, time.Minute), "b1"))

	loser := newBid("b1", "l1", 15000, 0)
	loser.Status = models.BidWon

	assert.ErrorIs(t, s.SettleAuction(ctx, listing, loser), storage.ErrConflict)
}

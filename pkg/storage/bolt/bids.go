package bolt

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	bolt "github.com/boltdb/bolt"

	"github.com/chris/marketplace-auctions/pkg/models"
)

// FindTopBid returns the highest bid placed on an auction, or nil.
func (s *Store) FindTopBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	bids, err := s.FindBids(ctx, auctionID)
	if err != nil || len(bids) == 0 {
		return nil, err
	}
	return bids[0], nil
}

// FindWinningBid returns the bid flagged as winning, or nil.
func (s *Store) FindWinningBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	bids, err := s.FindBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	for _, bid := range bids {
		if bid.IsWinning {
			return bid, nil
		}
	}
	return nil, nil
}

// FindBids returns every bid of an auction, highest amount first.
func (s *Store) FindBids(ctx context.Context, auctionID string) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		bids, err = auctionBids(tx, auctionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// UpdateBidsBulk applies patch to every bid of filter.AuctionID except
// filter.ExcludeID and returns the number of bids that changed.
func (s *Store) UpdateBidsBulk(ctx context.Context, filter models.BidFilter, patch models.BidPatch) (int, error) {
	var updated int
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		updated, err = updateBids(tx, filter, patch)
		return err
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// auctionBids loads the bids of an auction through its index bucket, highest
// amount first. Equal amounts keep placement order.
func auctionBids(tx *bolt.Tx, auctionID string) ([]*models.Bid, error) {
	bids := []*models.Bid{}
	index := tx.Bucket(auctionBidsBucket).Bucket([]byte(auctionID))
	if index == nil {
		return bids, nil
	}

	all := tx.Bucket(bidsBucket)
	err := index.ForEach(func(k, _ []byte) error {
		v := all.Get(k)
		if v == nil {
			return fmt.Errorf("bid %s is indexed but missing", k)
		}
		var bid models.Bid
		if err := json.Unmarshal(v, &bid); err != nil {
			return fmt.Errorf("failed to unmarshal bid %s: %w", k, err)
		}
		bids = append(bids, &bid)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(bids, func(a, b *models.Bid) int {
		if c := cmp.Compare(b.BidAmount, a.BidAmount); c != 0 {
			return c
		}
		return a.PlacedAt.Compare(b.PlacedAt)
	})
	return bids, nil
}

func insertBid(tx *bolt.Tx, bid *models.Bid) error {
	all := tx.Bucket(bidsBucket)
	if all.Get([]byte(bid.ID)) != nil {
		return fmt.Errorf("bid %s already exists", bid.ID)
	}
	if err := put(all, bid.ID, bid); err != nil {
		return err
	}
	index, err := tx.Bucket(auctionBidsBucket).CreateBucketIfNotExists([]byte(bid.AuctionID))
	if err != nil {
		return fmt.Errorf("failed to create bid index for %s: %w", bid.AuctionID, err)
	}
	return index.Put([]byte(bid.ID), []byte{})
}

func updateBids(tx *bolt.Tx, filter models.BidFilter, patch models.BidPatch) (int, error) {
	bids, err := auctionBids(tx, filter.AuctionID)
	if err != nil {
		return 0, err
	}

	updated := 0
	all := tx.Bucket(bidsBucket)
	for _, bid := range bids {
		if bid.ID == filter.ExcludeID {
			continue
		}
		if bid.IsWinning == patch.IsWinning && bid.Status == patch.Status {
			continue
		}
		bid.IsWinning = patch.IsWinning
		bid.Status = patch.Status
		if err := put(all, bid.ID, bid); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

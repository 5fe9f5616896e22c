package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

var outbid = models.BidPatch{IsWinning: false, Status: models.BidOutbid}

// RecordBid inserts bid, demotes every other bid of the auction and saves the
// listing in one transaction. previousBidID is covered by the full demotion.
func (s *Store) RecordBid(ctx context.Context, listing *models.Listing, bid *models.Bid, previousBidID string) error {
	return s.commit(listing, func(tx *bolt.Tx) error {
		if err := saveListing(tx, listing); err != nil {
			return err
		}
		if err := insertBid(tx, bid); err != nil {
			return err
		}
		if _, err := updateBids(tx, models.BidFilter{AuctionID: bid.AuctionID, ExcludeID: bid.ID}, outbid); err != nil {
			return fmt.Errorf("failed to demote previous bids: %w", err)
		}
		return nil
	})
}

// CloseAuction saves the closed listing and, when there is a winner, marks it
// winning and every other bid outbid in the same transaction.
func (s *Store) CloseAuction(ctx context.Context, listing *models.Listing, winner *models.Bid) error {
	return s.commit(listing, func(tx *bolt.Tx) error {
		if err := saveListing(tx, listing); err != nil {
			return err
		}
		if winner == nil {
			return nil
		}
		if _, err := getBid(tx, winner.ID); err != nil {
			return err
		}
		if _, err := updateBids(tx, models.BidFilter{AuctionID: listing.ID, ExcludeID: winner.ID}, outbid); err != nil {
			return fmt.Errorf("failed to demote losing bids: %w", err)
		}
		return put(tx.Bucket(bidsBucket), winner.ID, winner)
	})
}

// SettleAuction saves the completed listing and stores the won bid. The stored
// bid must still be the winning one.
func (s *Store) SettleAuction(ctx context.Context, listing *models.Listing, bid *models.Bid) error {
	return s.commit(listing, func(tx *bolt.Tx) error {
		if err := saveListing(tx, listing); err != nil {
			return err
		}
		stored, err := getBid(tx, bid.ID)
		if err != nil {
			return err
		}
		if !stored.IsWinning {
			return storage.ErrConflict
		}
		return put(tx.Bucket(bidsBucket), bid.ID, bid)
	})
}

func getBid(tx *bolt.Tx, id string) (*models.Bid, error) {
	v := tx.Bucket(bidsBucket).Get([]byte(id))
	if v == nil {
		return nil, fmt.Errorf("bid %s not found", id)
	}
	var bid models.Bid
	if err := json.Unmarshal(v, &bid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bid %s: %w", id, err)
	}
	return &bid, nil
}

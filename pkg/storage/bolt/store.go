// Package bolt provides an embedded BoltDB implementation of the auction
// storage interfaces. Every composite write runs in a single bolt transaction.
package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/chris/marketplace-auctions/pkg/storage"
)

var (
	listingsBucket    = []byte("listings")
	bidsBucket        = []byte("bids")
	auctionBidsBucket = []byte("auction_bids")
)

// Store implements the Storage interface on a BoltDB file.
type Store struct {
	db *bolt.DB
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// New opens (or creates) a BoltDB database at the given path and ensures the
// buckets exist.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{listingsBucket, bidsBucket, auctionBidsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func put(b *bolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return b.Put([]byte(key), data)
}

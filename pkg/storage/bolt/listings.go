package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

// CreateListing stores a new listing at version 1.
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(listingsBucket)
		if b.Get([]byte(listing.ID)) != nil {
			return fmt.Errorf("listing %s already exists: %w", listing.ID, storage.ErrConflict)
		}
		stored := *listing
		stored.Version = 1
		return put(b, listing.ID, &stored)
	})
	if err != nil {
		return err
	}
	listing.Version = 1
	return nil
}

// GetListing retrieves a listing by ID.
func (s *Store) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	var listing *models.Listing
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		listing, err = getListing(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// SaveListing replaces a listing if its stored version still matches.
func (s *Store) SaveListing(ctx context.Context, listing *models.Listing) error {
	return s.commit(listing, func(tx *bolt.Tx) error {
		return saveListing(tx, listing)
	})
}

// commit runs fn in a write transaction and bumps listing.Version once the
// transaction has committed.
func (s *Store) commit(listing *models.Listing, fn func(tx *bolt.Tx) error) error {
	if err := s.db.Update(fn); err != nil {
		return err
	}
	listing.Version++
	return nil
}

// FindListings returns every listing matching the filter.
func (s *Store) FindListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	listings := []*models.Listing{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(listingsBucket).ForEach(func(k, v []byte) error {
			var l models.Listing
			if err := json.Unmarshal(v, &l); err != nil {
				return fmt.Errorf("failed to unmarshal listing %s: %w", k, err)
			}
			if filter.Matches(&l) {
				listings = append(listings, &l)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func getListing(tx *bolt.Tx, id string) (*models.Listing, error) {
	v := tx.Bucket(listingsBucket).Get([]byte(id))
	if v == nil {
		return nil, storage.ErrListingNotFound
	}
	var l models.Listing
	if err := json.Unmarshal(v, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing %s: %w", id, err)
	}
	return &l, nil
}

// saveListing writes listing at version+1 when the stored version equals
// listing.Version.
func saveListing(tx *bolt.Tx, listing *models.Listing) error {
	current, err := getListing(tx, listing.ID)
	if err != nil {
		return err
	}
	if current.Version != listing.Version {
		return storage.ErrConflict
	}

	stored := *listing
	stored.Version = listing.Version + 1
	return put(tx.Bucket(listingsBucket), listing.ID, &stored)
}

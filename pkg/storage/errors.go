package storage

import "errors"

// ErrListingNotFound is returned when a listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

// ErrConflict is returned when a versioned write lost a race with another writer.
var ErrConflict = errors.New("listing was modified concurrently")

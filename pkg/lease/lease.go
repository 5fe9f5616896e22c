// Package lease provides short-lived exclusive leases used to keep sweeps
// from overlapping.
package lease

import (
	"context"
	"time"
)

// Lease is a held lease. Release is safe to call after the lease expired.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out leases on named keys.
type Locker interface {
	// TryAcquire takes the lease on key for ttl. It returns ok=false without
	// error when someone else holds it.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (l Lease, ok bool, err error)
}

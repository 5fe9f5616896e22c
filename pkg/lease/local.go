package lease

import (
	"context"
	"sync"
	"time"

	"github.com/chris/marketplace-auctions/pkg/clock"
)

// LocalLocker implements Locker within a single process.
type LocalLocker struct {
	clock clock.Clock

	mu     sync.Mutex
	leases map[string]*localLease
}

// Make sure we conform to the interface
var _ Locker = (*LocalLocker)(nil)

// NewLocalLocker creates a LocalLocker using c to expire leases.
func NewLocalLocker(c clock.Clock) *LocalLocker {
	return &LocalLocker{clock: c, leases: make(map[string]*localLease)}
}

// TryAcquire takes the lease on key for ttl.
func (l *LocalLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if held, ok := l.leases[key]; ok && now.Before(held.expires) {
		return nil, false, nil
	}
	lease := &localLease{owner: l, key: key, expires: now.Add(ttl)}
	l.leases[key] = lease
	return lease, true, nil
}

type localLease struct {
	owner   *LocalLocker
	key     string
	expires time.Time
}

func (h *localLease) Release(ctx context.Context) error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.owner.leases[h.key] == h {
		delete(h.owner.leases, h.key)
	}
	return nil
}

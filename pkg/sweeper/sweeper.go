// Package sweeper runs the auction sweep on a fixed interval.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/chris/marketplace-auctions/pkg/lease"
	"github.com/chris/marketplace-auctions/pkg/service"
)

// LeaseKey is the lease every sweeper instance competes for.
const LeaseKey = "auction-sweep"

// Sweeper is the operation the runner schedules.
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepResult, error)
}

// Runner invokes Sweep every interval while holding the sweep lease.
type Runner struct {
	sweeper  Sweeper
	locker   lease.Locker
	interval time.Duration
	logger   *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(sweeper Sweeper, locker lease.Locker, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		sweeper:  sweeper,
		locker:   locker,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("auction sweeper started", "interval", r.interval)
	for {
		r.RunOnce(ctx)
		select {
		case <-ctx.Done():
			r.logger.Info("auction sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single sweep if the lease is free. It reports whether a
// sweep ran. Errors are logged; the next tick retries.
func (r *Runner) RunOnce(ctx context.Context) bool {
	// The lease outlives a normal sweep but expires if this instance dies mid-run.
	held, ok, err := r.locker.TryAcquire(ctx, LeaseKey, 2*r.interval)
	if err != nil {
		r.logger.Error("failed to acquire sweep lease", "error", err)
		return false
	}
	if !ok {
		r.logger.Debug("sweep lease held elsewhere, skipping")
		return false
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			r.logger.Warn("failed to release sweep lease", "error", err)
		}
	}()

	if _, err := r.sweeper.Sweep(ctx); err != nil {
		r.logger.Error("auction sweep failed", "error", err)
	}
	return true
}

// Package service implements the auction lifecycle: bid placement, the
// closing sweep and payment confirmation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/clock"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

// maxCommitAttempts bounds how often an operation re-reads the listing after
// losing a versioned write to another instance.
const maxCommitAttempts = 5

// AuctionService coordinates the auction core over a storage backend.
// Mutations of a single auction are serialized in-process by a lock keyed by
// auction ID and across processes by the listing version.
type AuctionService struct {
	store         storage.Storage
	clock         clock.Clock
	logger        *slog.Logger
	publisher     events.Publisher
	paymentWindow time.Duration
	locks         *keyedMutex
	newID         func() string
}

// Option configures an AuctionService.
type Option func(*AuctionService)

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(s *AuctionService) { s.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *AuctionService) { s.logger = l }
}

// WithPublisher sets where lifecycle events are published.
func WithPublisher(p events.Publisher) Option {
	return func(s *AuctionService) { s.publisher = p }
}

// WithPaymentWindow sets how long a winner has to confirm payment.
func WithPaymentWindow(d time.Duration) Option {
	return func(s *AuctionService) { s.paymentWindow = d }
}

// New creates an AuctionService.
func New(store storage.Storage, opts ...Option) *AuctionService {
	s := &AuctionService{
		store:         store,
		clock:         clock.System,
		logger:        slog.Default(),
		publisher:     events.NoOpPublisher{},
		paymentWindow: auction.DefaultPaymentWindow,
		locks:         newKeyedMutex(),
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// retryOnConflict runs fn until it succeeds, fails with something other than
// storage.ErrConflict, or maxCommitAttempts is reached. fn must re-read
// whatever state it validates.
func (s *AuctionService) retryOnConflict(ctx context.Context, op, auctionID string, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if !errors.Is(err, storage.ErrConflict) || attempt == maxCommitAttempts {
			return err
		}
		s.logger.DebugContext(ctx, "listing changed concurrently, retrying",
			"operation", op, "auction_id", auctionID, "attempt", attempt)
	}
}

// publish delivers an event after a committed change. Delivery failures never
// undo the change, so they are logged only.
func (s *AuctionService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			"type", event.Type, "auction_id", event.AuctionID, "error", err)
	}
}

// getAuction loads a listing and maps a missing record to auction.ErrNotFound.
func (s *AuctionService) getAuction(ctx context.Context, auctionID string) (*models.Listing, error) {
	listing, err := s.store.GetListing(ctx, auctionID)
	if errors.Is(err, storage.ErrListingNotFound) {
		return nil, auction.NotFound(auctionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", auctionID, err)
	}
	return listing, nil
}

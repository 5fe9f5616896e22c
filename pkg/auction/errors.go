package auction

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrForbidden        = errors.New("forbidden")
)

// ErrNoWinningBid is returned when a payment-pending auction has no winning bid.
// Every payment-pending auction must have one, so this indicates corrupted state.
var ErrNoWinningBid = &Error{Kind: ErrInvalidState, Message: "no winning bid found"}

// Error describes a violated precondition of an auction operation.
type Error struct {
	Kind    error
	Message string

	// MinimumBid is set on rejected bids: a new bid must be strictly greater than it.
	MinimumBid int64
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error for the given auction.
func NotFound(auctionID string) *Error {
	return newError(ErrNotFound, "auction %s not found", auctionID)
}

// BidTooLow builds the rejection for a bid that does not exceed minimum.
func BidTooLow(minimum int64) *Error {
	return &Error{
		Kind:       ErrInvalidArgument,
		Message:    fmt.Sprintf("bid must be greater than %s", FormatAmount(minimum)),
		MinimumBid: minimum,
	}
}

// FormatAmount renders minor units as a fixed two-decimal amount.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// NotAnAuction builds the error for auction operations on other listings.
func NotAnAuction(listingID string) *Error {
	return newError(ErrInvalidOperation, "listing %s is not an auction", listingID)
}

// NotWinningBidder builds the error for a payment confirmation by anyone but the winner.
func NotWinningBidder() *Error {
	return newError(ErrForbidden, "you are not the winning bidder")
}

// NotAwaitingPayment builds the error for confirming an auction outside payment_pending.
func NotAwaitingPayment() *Error {
	return newError(ErrInvalidState, "auction not awaiting payment")
}

package auctions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/chris/marketplace-auctions/pkg/api"
	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/mapping"
	"github.com/chris/marketplace-auctions/pkg/middleware"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

// Service is the auction behaviour the HTTP layer depends on.
type Service interface {
	CreateAuction(ctx context.Context, in auction.NewAuction) (*models.Listing, error)
	GetAuction(ctx context.Context, auctionID string) (*models.Listing, error)
	ListBids(ctx context.Context, auctionID string) ([]*models.Bid, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*models.Bid, error)
	ConfirmPayment(ctx context.Context, auctionID, requesterID string) (*models.Listing, error)
}

// AuctionsHandler holds the dependencies for auction-related handlers.
type AuctionsHandler struct {
	Service  Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

// NewAuctionsHandler creates a new AuctionsHandler.
func NewAuctionsHandler(svc Service, logger *slog.Logger) *AuctionsHandler {
	return &AuctionsHandler{
		Service:  svc,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Logger:   logger,
	}
}

// CreateAuction handles the creation of a new auction listing by the caller.
func (h *AuctionsHandler) CreateAuction(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var newAuction api.NewAuction
	if err := json.NewDecoder(r.Body).Decode(&newAuction); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}
	if err := h.Validate.Struct(newAuction); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	in, err := mapping.ToDomainNewAuction(sellerID, &newAuction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: err.Error()})
		return
	}

	listing, err := h.Service.CreateAuction(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiAuction(listing))
}

// GetAuctionById returns a single auction.
func (h *AuctionsHandler) GetAuctionById(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID) {
	listing, err := h.Service.GetAuction(r.Context(), auctionId.String())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiAuction(listing))
}

// ListAuctionBids returns the bids of an auction, highest first.
func (h *AuctionsHandler) ListAuctionBids(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID) {
	bids, err := h.Service.ListBids(r.Context(), auctionId.String())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiBids(bids))
}

// PlaceBid places a bid on behalf of the caller.
func (h *AuctionsHandler) PlaceBid(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID) {
	bidderID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var newBid api.NewBid
	if err := json.NewDecoder(r.Body).Decode(&newBid); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}
	amount, err := mapping.ToMinorUnits(newBid.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: err.Error()})
		return
	}

	bid, err := h.Service.PlaceBid(r.Context(), auctionId.String(), bidderID, amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiBid(bid))
}

// ConfirmPayment records the caller's payment for an auction they won.
func (h *AuctionsHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID) {
	requesterID, ok := requireUser(w, r)
	if !ok {
		return
	}

	listing, err := h.Service.ConfirmPayment(r.Context(), auctionId.String(), requesterID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiAuction(listing))
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, auction.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auction.ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, auction.ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auction.ErrInvalidState), errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, auction.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuctionsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := api.Error{Message: err.Error()}

	var aerr *auction.Error
	if errors.As(err, &aerr) && aerr.MinimumBid > 0 {
		minimum := mapping.FromMinorUnits(aerr.MinimumBid)
		body.MinimumBid = &minimum
	}
	if status == http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		body.Message = "internal server error"
	}

	writeJSON(w, status, body)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, api.Error{Message: "missing " + middleware.UserIDHeader + " header"})
	}
	return userID, ok
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

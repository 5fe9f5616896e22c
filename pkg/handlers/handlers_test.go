package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chris/marketplace-auctions/pkg/auction"
	"github.com/chris/marketplace-auctions/pkg/handlers/auctions/mocks"
	"github.com/chris/marketplace-auctions/pkg/middleware"
	"github.com/chris/marketplace-auctions/pkg/models"
)

func TestRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Health", func(t *testing.T) {
		router := NewRouter(NewApiHandler(mocks.NewService(t), logger), nil, logger)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Identity Reaches Handler", func(t *testing.T) {
		svc := mocks.NewService(t)
		router := NewRouter(NewApiHandler(svc, logger), nil, logger)
		auctionID := uuid.New().String()
		svc.On("ConfirmPayment", mock.Anything, auctionID, "alice").Return(nil, auction.NotAwaitingPayment())

		req := httptest.NewRequest(http.MethodPost, "/auctions/"+auctionID+"/payment", nil)
		req.Header.Set(middleware.UserIDHeader, "alice")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Websocket Route", func(t *testing.T) {
		called := false
		ws := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
		router := NewRouter(NewApiHandler(mocks.NewService(t), logger), ws, logger)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.True(t, called)
	})

	t.Run("Get Without Identity", func(t *testing.T) {
		svc := mocks.NewService(t)
		router := NewRouter(NewApiHandler(svc, logger), nil, logger)
		auctionID := uuid.New().String()
		svc.On("GetAuction", mock.Anything, auctionID).Return(&models.Listing{
			ID: auctionID, Category: models.CategoryAuction,
			Auction: &models.AuctionDetails{AuctionStatus: models.AuctionActive},
		}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auctions/"+auctionID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

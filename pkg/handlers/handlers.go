package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chris/marketplace-auctions/pkg/api"
	"github.com/chris/marketplace-auctions/pkg/handlers/auctions"
	"github.com/chris/marketplace-auctions/pkg/middleware"
)

// ApiHandler implements the server interface by composing the resource handlers.
type ApiHandler struct {
	*auctions.AuctionsHandler
}

// NewApiHandler creates a new ApiHandler backed by the auction service.
func NewApiHandler(svc auctions.Service, logger *slog.Logger) *ApiHandler {
	return &ApiHandler{AuctionsHandler: auctions.NewAuctionsHandler(svc, logger)}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// HealthCheck reports that the process is serving requests.
func (h *ApiHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// NewRouter mounts the API and, when ws is non-nil, the local websocket endpoint.
func NewRouter(h api.ServerInterface, ws http.Handler, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Identity)
	router.Use(middleware.NewStructuredLogger(logger))

	api.HandlerFromMux(h, router)
	if ws != nil {
		router.Get("/ws", ws.ServeHTTP)
	}
	return router
}

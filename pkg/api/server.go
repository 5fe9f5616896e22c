package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create an auction listing
	// (POST /auctions)
	CreateAuction(w http.ResponseWriter, r *http.Request)
	// Get an auction
	// (GET /auctions/{auctionId})
	GetAuctionById(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID)
	// List the bids of an auction, highest first
	// (GET /auctions/{auctionId}/bids)
	ListAuctionBids(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID)
	// Place a bid
	// (POST /auctions/{auctionId}/bids)
	PlaceBid(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID)
	// Confirm payment for a won auction
	// (POST /auctions/{auctionId}/payment)
	ConfirmPayment(w http.ResponseWriter, r *http.Request, auctionId openapi_types.UUID)
	// Health check
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) auctionID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var auctionId openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "auctionId", chi.URLParam(r, "auctionId"), &auctionId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "auctionId", Err: err})
		return auctionId, false
	}
	return auctionId, true
}

// CreateAuction operation middleware
func (siw *ServerInterfaceWrapper) CreateAuction(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateAuction)
}

// GetAuctionById operation middleware
func (siw *ServerInterfaceWrapper) GetAuctionById(w http.ResponseWriter, r *http.Request) {
	auctionId, ok := siw.auctionID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetAuctionById(w, r, auctionId)
	})
}

// ListAuctionBids operation middleware
func (siw *ServerInterfaceWrapper) ListAuctionBids(w http.ResponseWriter, r *http.Request) {
	auctionId, ok := siw.auctionID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListAuctionBids(w, r, auctionId)
	})
}

// PlaceBid operation middleware
func (siw *ServerInterfaceWrapper) PlaceBid(w http.ResponseWriter, r *http.Request) {
	auctionId, ok := siw.auctionID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PlaceBid(w, r, auctionId)
	})
}

// ConfirmPayment operation middleware
func (siw *ServerInterfaceWrapper) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	auctionId, ok := siw.auctionID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ConfirmPayment(w, r, auctionId)
	})
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.HealthCheck)
}

// InvalidParamFormatError is passed to the error handler when a parameter fails to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/auctions", wrapper.CreateAuction)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/auctions/{auctionId}", wrapper.GetAuctionById)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/auctions/{auctionId}/bids", wrapper.ListAuctionBids)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/auctions/{auctionId}/bids", wrapper.PlaceBid)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/auctions/{auctionId}/payment", wrapper.ConfirmPayment)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})

	return r
}

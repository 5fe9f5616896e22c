package mocks

import (
	context "context"

	auction "github.com/chris/marketplace-auctions/pkg/auction"
	models "github.com/chris/marketplace-auctions/pkg/models"
	mock "github.com/stretchr/testify/mock"
)

// Service is a mock type for the Service type
type Service struct {
	mock.Mock
}

// ConfirmPayment provides a mock function with given fields: ctx, auctionID, requesterID
func (_m *Service) ConfirmPayment(ctx context.Context, auctionID string, requesterID string) (*models.Listing, error) {
	ret := _m.Called(ctx, auctionID, requesterID)

	var r0 *models.Listing
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*models.Listing, error)); ok {
		return rf(ctx, auctionID, requesterID)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Listing)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// CreateAuction provides a mock function with given fields: ctx, in
func (_m *Service) CreateAuction(ctx context.Context, in auction.NewAuction) (*models.Listing, error) {
	ret := _m.Called(ctx, in)

	var r0 *models.Listing
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, auction.NewAuction) (*models.Listing, error)); ok {
		return rf(ctx, in)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Listing)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// GetAuction provides a mock function with given fields: ctx, auctionID
func (_m *Service) GetAuction(ctx context.Context, auctionID string) (*models.Listing, error) {
	ret := _m.Called(ctx, auctionID)

	var r0 *models.Listing
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Listing, error)); ok {
		return rf(ctx, auctionID)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Listing)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// ListBids provides a mock function with given fields: ctx, auctionID
func (_m *Service) ListBids(ctx context.Context, auctionID string) ([]*models.Bid, error) {
	ret := _m.Called(ctx, auctionID)

	var r0 []*models.Bid
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]*models.Bid, error)); ok {
		return rf(ctx, auctionID)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Bid)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// PlaceBid provides a mock function with given fields: ctx, auctionID, bidderID, amount
func (_m *Service) PlaceBid(ctx context.Context, auctionID string, bidderID string, amount int64) (*models.Bid, error) {
	ret := _m.Called(ctx, auctionID, bidderID, amount)

	var r0 *models.Bid
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, int64) (*models.Bid, error)); ok {
		return rf(ctx, auctionID, bidderID, amount)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Bid)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	mock := &Service{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

package mocks

import (
	context "context"

	models "github.com/chris/marketplace-auctions/pkg/models"
	mock "github.com/stretchr/testify/mock"
)

// Storage is a mock type for the Storage type
type Storage struct {
	mock.Mock
}

// CloseAuction provides a mock function with given fields: ctx, listing, winner
func (_m *Storage) CloseAuction(ctx context.Context, listing *models.Listing, winner *models.Bid) error {
	ret := _m.Called(ctx, listing, winner)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Listing, *models.Bid) error); ok {
		r0 = rf(ctx, listing, winner)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// CreateListing provides a mock function with given fields: ctx, listing
func (_m *Storage) CreateListing(ctx context.Context, listing *models.Listing) error {
	ret := _m.Called(ctx, listing)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Listing) error); ok {
		r0 = rf(ctx, listing)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindBids provides a mock function with given fields: ctx, auctionID
func (_m *Storage) FindBids(ctx context.Context, auctionID string) ([]*models.Bid, error) {
	ret := _m.Called(ctx, auctionID)

	var r0 []*models.Bid
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]*models.Bid, error)); ok {
		return rf(ctx, auctionID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []*models.Bid); ok {
		r0 = rf(ctx, auctionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*models.Bid)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, auctionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindListings provides a mock function with given fields: ctx, filter
func (_m *Storage) FindListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*models.Listing
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.ListingFilter) ([]*models.Listing, error)); ok {
		return rf(ctx, filter)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.ListingFilter) []*models.Listing); ok {
		r0 = rf(ctx, filter)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*models.Listing)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.ListingFilter) error); ok {
		r1 = rf(ctx, filter)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindTopBid provides a mock function with given fields: ctx, auctionID
func (_m *Storage) FindTopBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	ret := _m.Called(ctx, auctionID)

	var r0 *models.Bid
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Bid, error)); ok {
		return rf(ctx, auctionID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Bid); ok {
		r0 = rf(ctx, auctionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Bid)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, auctionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindWinningBid provides a mock function with given fields: ctx, auctionID
func (_m *Storage) FindWinningBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	ret := _m.Called(ctx, auctionID)

	var r0 *models.Bid
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Bid, error)); ok {
		return rf(ctx, auctionID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Bid); ok {
		r0 = rf(ctx, auctionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Bid)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, auctionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetListing provides a mock function with given fields: ctx, id
func (_m *Storage) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Listing
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Listing, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Listing); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Listing)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecordBid provides a mock function with given fields: ctx, listing, bid, previousBidID
func (_m *Storage) RecordBid(ctx context.Context, listing *models.Listing, bid *models.Bid, previousBidID string) error {
	ret := _m.Called(ctx, listing, bid, previousBidID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Listing, *models.Bid, string) error); ok {
		r0 = rf(ctx, listing, bid, previousBidID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SaveListing provides a mock function with given fields: ctx, listing
func (_m *Storage) SaveListing(ctx context.Context, listing *models.Listing) error {
	ret := _m.Called(ctx, listing)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Listing) error); ok {
		r0 = rf(ctx, listing)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SettleAuction provides a mock function with given fields: ctx, listing, bid
func (_m *Storage) SettleAuction(ctx context.Context, listing *models.Listing, bid *models.Bid) error {
	ret := _m.Called(ctx, listing, bid)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Listing, *models.Bid) error); ok {
		r0 = rf(ctx, listing, bid)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// UpdateBidsBulk provides a mock function with given fields: ctx, filter, patch
func (_m *Storage) UpdateBidsBulk(ctx context.Context, filter models.BidFilter, patch models.BidPatch) (int, error) {
	ret := _m.Called(ctx, filter, patch)

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.BidFilter, models.BidPatch) (int, error)); ok {
		return rf(ctx, filter, patch)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.BidFilter, models.BidPatch) int); ok {
		r0 = rf(ctx, filter, patch)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.BidFilter, models.BidPatch) error); ok {
		r1 = rf(ctx, filter, patch)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewStorage creates a new instance of Storage. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *Storage {
	mock := &Storage{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

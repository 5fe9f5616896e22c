package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
	"github.com/chris/marketplace-auctions/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var auctionEnd = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testListing() *models.Listing {
	return &models.Listing{
		ID:       "listing-1",
		SellerID: "seller-1",
		Title:    "Vintage bike",
		Category: models.CategoryAuction,
		Status:   models.ListingActive,
		Auction: &models.AuctionDetails{
			AuctionEnd:    auctionEnd,
			StartingBid:   10000,
			AuctionStatus: models.AuctionActive,
		},
		Version: 3,
	}
}

func newTestStore(client DynamoDBAPI) *Store {
	return New(client, "listings", "bids", "connections")
}

func TestGetListing(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		item, err := attributevalue.MarshalMap(newListingRecord(testListing()))
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return *in.TableName == "listings" && *in.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()

		listing, err := store.GetListing(context.Background(), "listing-1")

		assert.NoError(t, err)
		assert.Equal(t, "listing-1", listing.ID)
		assert.Equal(t, int64(3), listing.Version)
		assert.Equal(t, models.AuctionActive, listing.Auction.AuctionStatus)
		assert.True(t, auctionEnd.Equal(listing.Auction.AuctionEnd))
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.GetListing(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrListingNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		_, err := store.GetListing(context.Background(), "listing-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get listing")
		mockClient.AssertExpectations(t)
	})
}

func TestCreateListing(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		listing := testListing()
		listing.Version = 0

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			version := in.Item["version"].(*types.AttributeValueMemberN).Value
			status := in.Item["auction_status"].(*types.AttributeValueMemberS).Value
			return *in.ConditionExpression == "attribute_not_exists(id)" && version == "1" && status == "active"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		err := store.CreateListing(context.Background(), listing)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), listing.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.CreateListing(context.Background(), testListing())

		assert.ErrorIs(t, err, storage.ErrConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestSaveListing(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		listing := testListing()

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			expected := in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN).Value
			written := in.Item["version"].(*types.AttributeValueMemberN).Value
			return *in.ConditionExpression == "version = :version" && expected == "3" && written == "4"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		err := store.SaveListing(context.Background(), listing)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), listing.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		listing := testListing()

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.SaveListing(context.Background(), listing)

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.Equal(t, int64(3), listing.Version)
		mockClient.AssertExpectations(t)
	})
}

func TestFindListings(t *testing.T) {
	cutoff := auctionEnd.Add(time.Minute)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		due, _ := attributevalue.MarshalMap(newListingRecord(testListing()))
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			end := in.ExpressionAttributeValues[":end"].(*types.AttributeValueMemberS).Value
			return *in.IndexName == auctionStatusEndIndex &&
				*in.KeyConditionExpression == "auction_status = :status AND auction_end <= :end" &&
				*in.FilterExpression == "category = :category" &&
				end == "2025-06-01T12:01:00.000000000Z"
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{due}}, nil).Once()

		listings, err := store.FindListings(context.Background(), models.ListingFilter{
			Category:         models.CategoryAuction,
			AuctionStatus:    models.AuctionActive,
			AuctionEndBefore: cutoff,
		})

		assert.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "listing-1", listings[0].ID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Scan Without Status", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		item, _ := attributevalue.MarshalMap(newListingRecord(testListing()))
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{item}}, nil).Once()

		listings, err := store.FindListings(context.Background(), models.ListingFilter{Category: models.CategoryAuction})

		assert.NoError(t, err)
		assert.Len(t, listings, 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Query Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed")).Once()

		_, err := store.FindListings(context.Background(), models.ListingFilter{AuctionStatus: models.AuctionActive})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query listings")
		mockClient.AssertExpectations(t)
	})
}

func TestIndexTimeOrdersLexicographically(t *testing.T) {
	utc := indexTime(time.Date(2025, 6, 1, 9, 59, 59, 999, time.UTC))
	// 09:00 UTC
	cet := indexTime(time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600)))
	assert.Less(t, cet, utc)
	assert.Len(t, utc, len(indexTimeLayout))
}

package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

const (
	auctionStatusEndIndex = "auction_status-auction_end-index"

	// Fixed width so that lexicographic order on the index matches time order.
	indexTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// listingRecord is the stored form of a listing. The auction status and end
// time are copied to top-level attributes so the sweep index can key on them.
type listingRecord struct {
	models.Listing
	IndexAuctionStatus string `dynamodbav:"auction_status,omitempty"`
	IndexAuctionEnd    string `dynamodbav:"auction_end,omitempty"`
}

func newListingRecord(l *models.Listing) listingRecord {
	rec := listingRecord{Listing: *l}
	if l.Auction != nil {
		rec.IndexAuctionStatus = string(l.Auction.AuctionStatus)
		rec.IndexAuctionEnd = indexTime(l.Auction.AuctionEnd)
	}
	return rec
}

func indexTime(t time.Time) string {
	return t.UTC().Format(indexTimeLayout)
}

// CreateListing stores a new listing at version 1.
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	rec := newListingRecord(listing)
	rec.Version = 1
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ListingsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("listing %s already exists: %w", listing.ID, storage.ErrConflict)
		}
		return fmt.Errorf("failed to create listing in DynamoDB: %w", err)
	}

	listing.Version = 1
	return nil
}

// GetListing retrieves a listing with a strongly consistent read.
func (s *Store) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.ListingsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrListingNotFound
	}

	var rec listingRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	return &rec.Listing, nil
}

// SaveListing replaces a listing if its stored version still matches.
func (s *Store) SaveListing(ctx context.Context, listing *models.Listing) error {
	put, err := s.versionedListingPut(listing)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 put.TableName,
		Item:                      put.Item,
		ConditionExpression:       put.ConditionExpression,
		ExpressionAttributeValues: put.ExpressionAttributeValues,
	})
	if err != nil {
		if isConditionFailure(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to save listing in DynamoDB: %w", err)
	}

	listing.Version++
	return nil
}

// versionedListingPut builds a put of the listing at version+1, conditioned on
// the stored version being the one the caller read.
func (s *Store) versionedListingPut(listing *models.Listing) (*types.Put, error) {
	rec := newListingRecord(listing)
	rec.Version = listing.Version + 1
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	return &types.Put{
		TableName:           aws.String(s.ListingsTableName),
		Item:                item,
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(listing.Version, 10)},
		},
	}, nil
}

// FindListings returns listings matching the filter. Filters with an auction
// status use the status/end index; anything else falls back to a scan.
func (s *Store) FindListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	var items []map[string]types.AttributeValue
	var err error
	if filter.AuctionStatus != "" {
		items, err = s.queryListings(ctx, filter)
	} else {
		items, err = s.scanListings(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	var records []listingRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings: %w", err)
	}

	listings := make([]*models.Listing, 0, len(records))
	for i := range records {
		l := records[i].Listing
		if filter.Matches(&l) {
			listings = append(listings, &l)
		}
	}
	return listings, nil
}

func (s *Store) queryListings(ctx context.Context, filter models.ListingFilter) ([]map[string]types.AttributeValue, error) {
	keyCondition := "auction_status = :status"
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(filter.AuctionStatus)},
	}
	if !filter.AuctionEndBefore.IsZero() {
		keyCondition += " AND auction_end <= :end"
		values[":end"] = &types.AttributeValueMemberS{Value: indexTime(filter.AuctionEndBefore)}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.ListingsTableName),
		IndexName:                 aws.String(auctionStatusEndIndex),
		KeyConditionExpression:    aws.String(keyCondition),
		ExpressionAttributeValues: values,
	}
	if filter.Category != "" {
		input.FilterExpression = aws.String("category = :category")
		values[":category"] = &types.AttributeValueMemberS{Value: filter.Category}
	}

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query listings: %w", err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func (s *Store) scanListings(ctx context.Context, filter models.ListingFilter) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ListingsTableName),
	}
	if filter.Category != "" {
		input.FilterExpression = aws.String("category = :category")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":category": &types.AttributeValueMemberS{Value: filter.Category},
		}
	}

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listings: %w", err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

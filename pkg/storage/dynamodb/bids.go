package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/marketplace-auctions/pkg/models"
)

const auctionBidAmountIndex = "auction_id-bid_amount-index"

func (s *Store) auctionBidsQuery(auctionID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(s.BidsTableName),
		IndexName:              aws.String(auctionBidAmountIndex),
		KeyConditionExpression: aws.String("auction_id = :auction_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":auction_id": &types.AttributeValueMemberS{Value: auctionID},
		},
		ScanIndexForward: aws.Bool(false), // Highest amount first
	}
}

// FindTopBid returns the highest bid placed on an auction, or nil.
func (s *Store) FindTopBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	input := s.auctionBidsQuery(auctionID)
	input.Limit = aws.Int32(1)

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query top bid: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	var bid models.Bid
	if err := attributevalue.UnmarshalMap(result.Items[0], &bid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bid: %w", err)
	}
	return &bid, nil
}

// FindBids returns every bid of an auction, highest amount first.
func (s *Store) FindBids(ctx context.Context, auctionID string) ([]*models.Bid, error) {
	return s.queryBids(ctx, s.auctionBidsQuery(auctionID))
}

// FindWinningBid returns the bid currently flagged as winning, or nil.
func (s *Store) FindWinningBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	input := s.auctionBidsQuery(auctionID)
	input.FilterExpression = aws.String("is_winning = :true")
	input.ExpressionAttributeValues[":true"] = &types.AttributeValueMemberBOOL{Value: true}

	bids, err := s.queryBids(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, nil
	}
	return bids[0], nil
}

func (s *Store) queryBids(ctx context.Context, input *dynamodb.QueryInput) ([]*models.Bid, error) {
	var bids []*models.Bid
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query bids: %w", err)
		}
		var pageBids []*models.Bid
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageBids); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bids: %w", err)
		}
		bids = append(bids, pageBids...)
	}
	return bids, nil
}

// UpdateBidsBulk applies patch to every bid of filter.AuctionID except
// filter.ExcludeID. Each update is conditioned on the bid differing from the
// patch, so re-running it writes nothing. It returns the number of bids changed.
func (s *Store) UpdateBidsBulk(ctx context.Context, filter models.BidFilter, patch models.BidPatch) (int, error) {
	bids, err := s.FindBids(ctx, filter.AuctionID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, bid := range bids {
		if bid.ID == filter.ExcludeID {
			continue
		}
		_, err := s.Client.UpdateItem(ctx, s.bidPatchUpdate(bid.ID, patch))
		if err != nil {
			if isConditionFailure(err) {
				continue
			}
			return updated, fmt.Errorf("failed to update bid %s: %w", bid.ID, err)
		}
		updated++
	}
	return updated, nil
}

func (s *Store) bidPatchUpdate(bidID string, patch models.BidPatch) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BidsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: bidID},
		},
		UpdateExpression:    aws.String("SET is_winning = :is_winning, #status = :status"),
		ConditionExpression: aws.String("attribute_exists(id) AND (is_winning <> :is_winning OR #status <> :status)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":is_winning": &types.AttributeValueMemberBOOL{Value: patch.IsWinning},
			":status":     &types.AttributeValueMemberS{Value: string(patch.Status)},
		},
	}
}

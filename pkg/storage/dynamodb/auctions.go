package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/marketplace-auctions/pkg/models"
	"github.com/chris/marketplace-auctions/pkg/storage"
)

// RecordBid atomically inserts a bid, demotes the previous winning bid and
// saves the listing. The whole write fails with storage.ErrConflict if the
// listing changed since it was read.
func (s *Store) RecordBid(ctx context.Context, listing *models.Listing, bid *models.Bid, previousBidID string) error {
	listingPut, err := s.versionedListingPut(listing)
	if err != nil {
		return err
	}
	bidAV, err := attributevalue.MarshalMap(bid)
	if err != nil {
		return fmt.Errorf("failed to marshal bid: %w", err)
	}

	items := []types.TransactWriteItem{
		// Operation 1: Save the listing with the new current bid.
		{Put: listingPut},
		// Operation 2: Insert the bid.
		{
			Put: &types.Put{
				TableName:           aws.String(s.BidsTableName),
				Item:                bidAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}
	if previousBidID != "" && previousBidID != bid.ID {
		// Operation 3: Demote the bid that was winning until now.
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(s.BidsTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: previousBidID},
				},
				UpdateExpression:    aws.String("SET is_winning = :false, #status = :outbid"),
				ConditionExpression: aws.String("attribute_exists(id)"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":false":  &types.AttributeValueMemberBOOL{Value: false},
					":outbid": &types.AttributeValueMemberS{Value: string(models.BidOutbid)},
				},
			},
		})
	}

	if err := s.transact(ctx, items); err != nil {
		return fmt.Errorf("failed to record bid: %w", err)
	}
	listing.Version++
	return nil
}

// CloseAuction saves a closed listing. When there is a winner, the winning bid
// is promoted in the same transaction and every other bid is then marked outbid.
func (s *Store) CloseAuction(ctx context.Context, listing *models.Listing, winner *models.Bid) error {
	if winner == nil {
		return s.SaveListing(ctx, listing)
	}

	listingPut, err := s.versionedListingPut(listing)
	if err != nil {
		return err
	}
	items := []types.TransactWriteItem{
		{Put: listingPut},
		{
			Update: &types.Update{
				TableName: aws.String(s.BidsTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: winner.ID},
				},
				UpdateExpression:    aws.String("SET is_winning = :true, #status = :winning"),
				ConditionExpression: aws.String("attribute_exists(id)"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":    &types.AttributeValueMemberBOOL{Value: true},
					":winning": &types.AttributeValueMemberS{Value: string(models.BidWinning)},
				},
			},
		},
	}
	if err := s.transact(ctx, items); err != nil {
		return fmt.Errorf("failed to close auction: %w", err)
	}
	listing.Version++

	// The listing is already closed under the version guard, so only this
	// sweeper demotes the remaining bids.
	_, err = s.UpdateBidsBulk(ctx,
		models.BidFilter{AuctionID: listing.ID, ExcludeID: winner.ID},
		models.BidPatch{IsWinning: false, Status: models.BidOutbid},
	)
	if err != nil {
		// The close is committed. RecordBid already demoted earlier bids.
		slog.WarnContext(ctx, "failed to demote losing bids", "auction_id", listing.ID, "error", err)
	}
	return nil
}

// SettleAuction saves the completed listing and marks the winning bid as won.
func (s *Store) SettleAuction(ctx context.Context, listing *models.Listing, bid *models.Bid) error {
	listingPut, err := s.versionedListingPut(listing)
	if err != nil {
		return err
	}
	items := []types.TransactWriteItem{
		{Put: listingPut},
		{
			Update: &types.Update{
				TableName: aws.String(s.BidsTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: bid.ID},
				},
				UpdateExpression:    aws.String("SET #status = :won"),
				ConditionExpression: aws.String("is_winning = :true"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":won":  &types.AttributeValueMemberS{Value: string(models.BidWon)},
					":true": &types.AttributeValueMemberBOOL{Value: true},
				},
			},
		},
	}
	if err := s.transact(ctx, items); err != nil {
		return fmt.Errorf("failed to settle auction: %w", err)
	}
	listing.Version++
	return nil
}

func (s *Store) transact(ctx context.Context, items []types.TransactWriteItem) error {
	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		if isConditionFailure(err) {
			return storage.ErrConflict
		}
		return err
	}
	return nil
}

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/chris/marketplace-auctions/pkg/config"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/service"
	dydbstore "github.com/chris/marketplace-auctions/pkg/storage/dynamodb"
)

var svc *service.AuctionService

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg.StorageBackend = config.StorageDynamoDB
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBListingsTable, cfg.DynamoDBBidsTable, cfg.DynamoDBConnectionsTable)

	var publisher events.Publisher = events.NoOpPublisher{}
	if cfg.EventsBackend == config.EventsSQS {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	}

	svc = service.New(store,
		service.WithPublisher(publisher),
		service.WithPaymentWindow(cfg.PaymentWindow),
	)
}

// HandleRequest is triggered by an EventBridge Schedule. Individual auctions
// that fail are left active and picked up by the next invocation.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting auction sweep...")

	result, err := svc.Sweep(ctx)
	if err != nil {
		log.Printf("ERROR: auction sweep failed: %v", err)
		return err
	}

	log.Printf("Auction sweep finished: matched=%d closed=%d expired=%d skipped=%d failed=%d",
		result.Matched, result.Closed, result.Expired, result.Skipped, result.Failed)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}

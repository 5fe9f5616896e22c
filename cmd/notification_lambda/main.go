package main

import (
	"context"
	"encoding/json"
	"log"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/chris/marketplace-auctions/pkg/config"
	"github.com/chris/marketplace-auctions/pkg/events"
	dydbstore "github.com/chris/marketplace-auctions/pkg/storage/dynamodb"
	"github.com/chris/marketplace-auctions/pkg/websockets"
)

var forwarder events.Publisher

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DynamoDBConnectionsTable == "" || cfg.WebsocketAPIEndpoint == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME and WEBSOCKET_API_ENDPOINT must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBListingsTable, cfg.DynamoDBBidsTable, cfg.DynamoDBConnectionsTable)

	publisher, err := websockets.NewPublisher(context.TODO(), store, cfg.WebsocketAPIEndpoint)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
	forwarder = websockets.NewEventForwarder(publisher)
}

// HandleRequest forwards auction events from SQS to connected websocket clients.
// Messages that fail to deliver are reported back so SQS retries only those.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) (lambdaevents.SQSEventResponse, error) {
	var resp lambdaevents.SQSEventResponse
	for _, message := range sqsEvent.Records {
		var event events.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			// Retrying will not fix a malformed body.
			log.Printf("ERROR: failed to unmarshal event from SQS message %s: %v", message.MessageId, err)
			continue
		}

		if err := forwarder.Publish(ctx, &event); err != nil {
			log.Printf("ERROR: failed to forward event %s for auction %s: %v", event.ID, event.AuctionID, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, lambdaevents.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		log.Printf("Forwarded %s for auction %s", event.Type, event.AuctionID)
	}
	return resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}

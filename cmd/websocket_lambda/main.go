package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/chris/marketplace-auctions/pkg/config"
	wshandlers "github.com/chris/marketplace-auctions/pkg/handlers/websockets"
	dydbstore "github.com/chris/marketplace-auctions/pkg/storage/dynamodb"
)

var handler *wshandlers.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DynamoDBConnectionsTable == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBListingsTable, cfg.DynamoDBBidsTable, cfg.DynamoDBConnectionsTable)
	handler = wshandlers.NewHandler(store, nil, slog.Default())
}

func main() {
	lambda.Start(handler.HandleRequest)
}

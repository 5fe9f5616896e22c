package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/nats-io/nats.go"

	"github.com/chris/marketplace-auctions/pkg/clock"
	"github.com/chris/marketplace-auctions/pkg/config"
	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/handlers"
	wshandlers "github.com/chris/marketplace-auctions/pkg/handlers/websockets"
	"github.com/chris/marketplace-auctions/pkg/lease"
	"github.com/chris/marketplace-auctions/pkg/service"
	"github.com/chris/marketplace-auctions/pkg/storage"
	boltstore "github.com/chris/marketplace-auctions/pkg/storage/bolt"
	dydbstore "github.com/chris/marketplace-auctions/pkg/storage/dynamodb"
	"github.com/chris/marketplace-auctions/pkg/sweeper"
	"github.com/chris/marketplace-auctions/pkg/websockets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var awsCfg aws.Config
	if cfg.StorageBackend == config.StorageDynamoDB || cfg.EventsBackend == config.EventsSQS {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
	}

	// Storage
	var store storage.Storage
	switch cfg.StorageBackend {
	case config.StorageBolt:
		boltStore, err := boltstore.New(cfg.BoltPath)
		if err != nil {
			log.Fatalf("failed to open bolt store: %v", err)
		}
		defer boltStore.Close()
		store = boltStore
	default:
		store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBListingsTable, cfg.DynamoDBBidsTable, cfg.DynamoDBConnectionsTable)
	}

	// Events: local websocket clients always, plus the configured broker.
	hub := websockets.NewHub(logger)
	publisher := events.Fanout{websockets.NewEventForwarder(hub)}
	switch cfg.EventsBackend {
	case config.EventsSQS:
		publisher = append(publisher, events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL))
	case config.EventsNATS:
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to NATS: %v", err)
		}
		defer nc.Drain()
		natsPublisher, err := events.NewNATSPublisher(ctx, nc)
		if err != nil {
			log.Fatalf("failed to set up NATS publisher: %v", err)
		}
		publisher = append(publisher, natsPublisher)
	}

	svc := service.New(store,
		service.WithLogger(logger),
		service.WithPublisher(publisher),
		service.WithPaymentWindow(cfg.PaymentWindow),
	)

	// Sweep lease: shared through Redis when configured, otherwise per process.
	var locker lease.Locker = lease.NewLocalLocker(clock.System)
	if cfg.RedisAddr != "" {
		rdb, err := lease.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		locker = lease.NewRedisLocker(rdb, "auctions:")
	}
	go sweeper.NewRunner(svc, locker, cfg.SweepInterval, logger).Run(ctx)

	router := handlers.NewRouter(
		handlers.NewApiHandler(svc, logger),
		wshandlers.NewHandler(nil, hub, logger),
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: graceful shutdown failed: %v", err)
	}
}

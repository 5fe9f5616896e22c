// Package config loads runtime settings from the environment, reading a .env
// file first when one is present.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/chris/marketplace-auctions/pkg/auction"
)

// Storage backends.
const (
	StorageDynamoDB = "dynamodb"
	StorageBolt     = "bolt"
)

// Event backends.
const (
	EventsSQS  = "sqs"
	EventsNATS = "nats"
	EventsNone = "none"
)

// Config holds application configuration.
type Config struct {
	HTTPPort string

	StorageBackend           string
	BoltPath                 string
	DynamoDBListingsTable    string
	DynamoDBBidsTable        string
	DynamoDBConnectionsTable string

	EventsBackend string
	SQSQueueURL   string
	NATSURL       string

	RedisAddr     string
	RedisPassword string

	SweepInterval        time.Duration
	PaymentWindow        time.Duration
	WebsocketAPIEndpoint string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		StorageBackend:           getEnv("STORAGE_BACKEND", StorageDynamoDB),
		BoltPath:                 getEnv("BOLT_PATH", "auctions.db"),
		DynamoDBListingsTable:    os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME"),
		DynamoDBBidsTable:        os.Getenv("DYNAMODB_BIDS_TABLE_NAME"),
		DynamoDBConnectionsTable: os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
		EventsBackend:            getEnv("EVENTS_BACKEND", EventsNone),
		SQSQueueURL:              os.Getenv("SQS_QUEUE_URL"),
		NATSURL:                  getEnv("NATS_URL", "nats://localhost:4222"),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		WebsocketAPIEndpoint:     os.Getenv("WEBSOCKET_API_ENDPOINT"),
	}

	var err error
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.PaymentWindow, err = getDuration("PAYMENT_WINDOW", auction.DefaultPaymentWindow); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every setting the selected backends need but are missing.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case StorageDynamoDB:
		if c.DynamoDBListingsTable == "" || c.DynamoDBBidsTable == "" {
			errs = append(errs, errors.New("DYNAMODB_LISTINGS_TABLE_NAME and DYNAMODB_BIDS_TABLE_NAME must be set"))
		}
	case StorageBolt:
		if c.BoltPath == "" {
			errs = append(errs, errors.New("BOLT_PATH must be set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	switch c.EventsBackend {
	case EventsSQS:
		if c.SQSQueueURL == "" {
			errs = append(errs, errors.New("SQS_QUEUE_URL must be set"))
		}
	case EventsNATS:
		if c.NATSURL == "" {
			errs = append(errs, errors.New("NATS_URL must be set"))
		}
	case EventsNone:
	default:
		errs = append(errs, fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend))
	}

	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL must be positive"))
	}
	if c.PaymentWindow <= 0 {
		errs = append(errs, errors.New("PAYMENT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

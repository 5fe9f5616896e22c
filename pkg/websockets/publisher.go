package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// DefaultPublisher pushes messages to every connection registered behind API Gateway.
type DefaultPublisher struct {
	store  ConnectionStore
	client ConnectionPoster
	logger *slog.Logger
}

// NewPublisher creates a DefaultPublisher that posts through the given websocket API endpoint.
func NewPublisher(ctx context.Context, store ConnectionStore, apiEndpoint string) (*DefaultPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return NewPublisherWithClient(store, client, slog.Default()), nil
}

// NewPublisherWithClient creates a DefaultPublisher around an existing client.
func NewPublisherWithClient(store ConnectionStore, client ConnectionPoster, logger *slog.Logger) *DefaultPublisher {
	return &DefaultPublisher{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Publish sends a message to all connected clients. Connections that API Gateway
// reports as gone are removed from the store.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.store.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			p.logger.InfoContext(ctx, "stale connection found, deleting", "connectionId", connectionID)
			if err := p.store.RemoveConnection(ctx, connectionID); err != nil {
				p.logger.ErrorContext(ctx, "failed to delete stale connection", "connectionId", connectionID, "error", err)
			}
		} else {
			p.logger.ErrorContext(ctx, "failed to post to connection", "connectionId", connectionID, "error", err)
		}
	}

	return nil
}

// NoOpPublisher discards every message.
type NoOpPublisher struct{}

// Publish does nothing.
func (NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}

var (
	_ Publisher = (*DefaultPublisher)(nil)
	_ Publisher = NoOpPublisher{}
)

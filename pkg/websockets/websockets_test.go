package websockets_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/marketplace-auctions/pkg/events"
	"github.com/chris/marketplace-auctions/pkg/websockets"
)

type mockConnectionStore struct {
	mock.Mock
}

func (m *mockConnectionStore) AddConnection(ctx context.Context, connectionID string) error {
	return m.Called(ctx, connectionID).Error(0)
}

func (m *mockConnectionStore) RemoveConnection(ctx context.Context, connectionID string) error {
	return m.Called(ctx, connectionID).Error(0)
}

func (m *mockConnectionStore) GetAllConnections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPoster struct {
	mock.Mock
}

func (m *mockPoster) PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	args := m.Called(ctx, *params.ConnectionId)
	if out := args.Get(0); out != nil {
		return out.(*apigatewaymanagementapi.PostToConnectionOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultPublisher(t *testing.T) {
	msg := websockets.Message{Type: websockets.MessageTypeAuctionUpdate, Payload: "x"}

	t.Run("Success", func(t *testing.T) {
		store := new(mockConnectionStore)
		poster := new(mockPoster)
		store.On("GetAllConnections", mock.Anything).Return([]string{"c1", "c2"}, nil)
		poster.On("PostToConnection", mock.Anything, "c1").Return(&apigatewaymanagementapi.PostToConnectionOutput{}, nil)
		poster.On("PostToConnection", mock.Anything, "c2").Return(&apigatewaymanagementapi.PostToConnectionOutput{}, nil)

		p := websockets.NewPublisherWithClient(store, poster, discardLogger())

		assert.NoError(t, p.Publish(context.Background(), msg))
		store.AssertExpectations(t)
		poster.AssertExpectations(t)
	})

	t.Run("Stale Connection Removed", func(t *testing.T) {
		store := new(mockConnectionStore)
		poster := new(mockPoster)
		store.On("GetAllConnections", mock.Anything).Return([]string{"gone", "live"}, nil)
		store.On("RemoveConnection", mock.Anything, "gone").Return(nil)
		poster.On("PostToConnection", mock.Anything, "gone").Return(nil, &apigwtypes.GoneException{})
		poster.On("PostToConnection", mock.Anything, "live").Return(&apigatewaymanagementapi.PostToConnectionOutput{}, nil)

		p := websockets.NewPublisherWithClient(store, poster, discardLogger())

		assert.NoError(t, p.Publish(context.Background(), msg))
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "RemoveConnection", mock.Anything, "live")
	})

	t.Run("Post Error Is Not Fatal", func(t *testing.T) {
		store := new(mockConnectionStore)
		poster := new(mockPoster)
		store.On("GetAllConnections", mock.Anything).Return([]string{"c1"}, nil)
		poster.On("PostToConnection", mock.Anything, "c1").Return(nil, errors.New("throttled"))

		p := websockets.NewPublisherWithClient(store, poster, discardLogger())

		assert.NoError(t, p.Publish(context.Background(), msg))
		store.AssertNotCalled(t, "RemoveConnection", mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store := new(mockConnectionStore)
		store.On("GetAllConnections", mock.Anything).Return(nil, errors.New("boom"))

		p := websockets.NewPublisherWithClient(store, new(mockPoster), discardLogger())

		assert.ErrorContains(t, p.Publish(context.Background(), msg), "failed to get all connections")
	})
}

func TestMessageFromEvent(t *testing.T) {
	e := events.New(events.BidPlaced, "a1", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	e.BidID = "b1"
	e.BidderID = "alice"
	e.Amount = 12550

	msg := websockets.MessageFromEvent(e)

	assert.Equal(t, websockets.MessageTypeAuctionUpdate, msg.Type)
	payload := msg.Payload.(websockets.AuctionUpdatePayload)
	assert.Equal(t, "a1", payload.AuctionID)
	assert.Equal(t, "bid.placed", payload.Event)
	assert.Equal(t, "125.50", payload.Amount)
	assert.Equal(t, "alice", payload.BidderID)

	expired := websockets.MessageFromEvent(events.New(events.AuctionExpired, "a2", time.Now()))
	assert.Empty(t, expired.Payload.(websockets.AuctionUpdatePayload).Amount)
}

type recordingPublisher struct {
	messages []websockets.Message
}

func (r *recordingPublisher) Publish(ctx context.Context, message websockets.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func TestEventForwarder(t *testing.T) {
	rec := &recordingPublisher{}
	fwd := websockets.NewEventForwarder(rec)

	e := events.New(events.AuctionClosed, "a1", time.Now())
	e.WinnerID = "bob"
	require.NoError(t, fwd.Publish(context.Background(), e))

	require.Len(t, rec.messages, 1)
	assert.Equal(t, "bob", rec.messages[0].Payload.(websockets.AuctionUpdatePayload).WinnerID)
}

func TestHubBroadcast(t *testing.T) {
	hub := websockets.NewHub(discardLogger())
	registered := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("local-1", conn)
		close(registered)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
	}
	assert.Equal(t, 1, hub.Len())

	msg := websockets.MessageFromEvent(events.New(events.AuctionSettled, "a1", time.Now()))
	require.NoError(t, hub.Publish(context.Background(), msg))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string                          `json:"type"`
		Payload websockets.AuctionUpdatePayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "auctionUpdate", got.Type)
	assert.Equal(t, "auction.settled", got.Payload.Event)

	hub.Unregister("local-1")
	assert.Equal(t, 0, hub.Len())
}

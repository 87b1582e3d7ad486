package ws

import (
	"context"
	"sync"

	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client is one connected feed consumer. Events arrive on a buffered channel
// fed by the broadcaster and are written to the socket as JSON; the read
// side only watches for the peer closing the connection.
type Client struct {
	id      string
	conn    *websocket.Conn
	events  chan outbound.Event
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	mu      sync.Mutex
	logger  zerolog.Logger
}

type ClientParams struct {
	Conn   *websocket.Conn
	Logger zerolog.Logger
}

// NewClient creates a new feed client
func NewClient(params ClientParams) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()

	return &Client{
		id:     id,
		conn:   params.Conn,
		events: make(chan outbound.Event, 100), // buffered to absorb bursts of bid events
		ctx:    ctx,
		cancel: cancel,
		logger: params.Logger.With().Str("client_id", id).Logger(),
	}
}

// ID returns the client's identifier used for broadcaster subscriptions
func (client *Client) ID() string {
	return client.id
}

// Events returns the channel the broadcaster delivers into
func (client *Client) Events() chan outbound.Event {
	return client.events
}

// Done is closed when the client disconnects or is stopped
func (client *Client) Done() <-chan struct{} {
	return client.ctx.Done()
}

func (client *Client) Start() {
	go client.eventSender()
	go client.connectionWatcher()
}

func (client *Client) Stop() {
	client.mu.Lock()
	defer client.mu.Unlock()

	// Prevent double closing
	if client.stopped {
		return
	}
	client.stopped = true

	client.cancel()
	client.conn.Close()
}

func (client *Client) eventSender() {
	for {
		select {
		case event := <-client.events:
			if err := client.conn.WriteJSON(event); err != nil {
				client.logger.Error().Err(err).Msg("Failed to write event to client")
				client.cancel()
				return
			}
		case <-client.ctx.Done():
			return
		}
	}
}

func (client *Client) connectionWatcher() {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				client.logger.Error().Err(err).Msg("WebSocket read error for client")
			} else {
				client.logger.Info().Str("error", err.Error()).Msg("WebSocket connection closed")
			}
			client.cancel()
			return
		}
	}
}

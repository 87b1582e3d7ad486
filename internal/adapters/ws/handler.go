package ws

import (
	"context"
	"net/http"

	"gavel-auction-service/internal/config"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades feed connections and wires each client to the
// broadcaster's channel for the requested auction
type Handler struct {
	upgrader   websocket.Upgrader
	subscriber outbound.Subscriber
	logger     zerolog.Logger
}

type HandlerParams struct {
	Config     *config.Config
	Subscriber outbound.Subscriber
	Logger     zerolog.Logger
}

// NewHandler creates a new feed handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  params.Config.WebSocket.ReadBufferSize,
			WriteBufferSize: params.Config.WebSocket.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subscriber: params.Subscriber,
		logger:     params.Logger.With().Str("component", "ws_handler").Logger(),
	}
}

// HandleWebSocket upgrades the connection and streams the auction's events
// until the peer disconnects
func (handler *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	auctionIDStr := r.URL.Query().Get("auction_id")
	if auctionIDStr == "" {
		http.Error(w, "auction_id is required", http.StatusBadRequest)
		return
	}

	auctionID, err := uuid.Parse(auctionIDStr)
	if err != nil {
		http.Error(w, "invalid auction_id format", http.StatusBadRequest)
		return
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handler.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := NewClient(ClientParams{
		Conn:   conn,
		Logger: handler.logger,
	})

	if err := handler.subscriber.Subscribe(r.Context(), auctionID, client.ID(), client.Events()); err != nil {
		handler.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to subscribe client")
		conn.Close()
		return
	}

	client.Start()

	go func() {
		<-client.Done()
		if err := handler.subscriber.Unsubscribe(context.Background(), auctionID, client.ID()); err != nil {
			handler.logger.Error().Err(err).Str("client_id", client.ID()).Msg("Failed to unsubscribe client")
		}
		client.Stop()
	}()

	handler.logger.Info().
		Str("client_id", client.ID()).
		Str("auction_id", auctionID.String()).
		Msg("WebSocket client connected")
}

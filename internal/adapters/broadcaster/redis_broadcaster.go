package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBroadcaster implements the publisher and subscriber interfaces using
// Redis pub/sub. Each subscribed client holds one pubsub connection that may
// span several auction channels; events are forwarded to the client's local
// channel and dropped when it is full.
type RedisBroadcaster struct {
	client      *redis.Client
	subscribers map[string]chan outbound.Event // clientID -> local channel
	pubsubs     map[string]*redis.PubSub       // clientID -> pubsub instance
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	logger      zerolog.Logger
}

type RedisBroadcasterParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewBroadcaster(params RedisBroadcasterParams) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	return &RedisBroadcaster{
		client:      params.RedisClient,
		subscribers: make(map[string]chan outbound.Event),
		pubsubs:     make(map[string]*redis.PubSub),
		ctx:         ctx,
		cancel:      cancel,
		logger:      params.Logger.With().Str("component", "redis_broadcaster").Logger(),
	}
}

func channelName(auctionID uuid.UUID) string {
	return fmt.Sprintf("auction:%s", auctionID.String())
}

// Publish publishes an event on the auction's channel
func (r *RedisBroadcaster) Publish(ctx context.Context, auctionID uuid.UUID, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := r.client.Publish(ctx, channelName(auctionID), eventJSON)
	if err := result.Err(); err != nil {
		r.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to publish to Redis")
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}

	r.logger.Info().
		Str("event_type", string(event.Type)).
		Str("auction_id", auctionID.String()).
		Int64("subscriber_count", result.Val()).
		Msg("Published event to auction")

	return nil
}

// Subscribe delivers an auction's events to eventChan until the client
// unsubscribes
func (r *RedisBroadcaster) Subscribe(ctx context.Context, auctionID uuid.UUID, clientID string, eventChan chan outbound.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pubsub, exists := r.pubsubs[clientID]
	if !exists {
		pubsub = r.client.Subscribe(ctx)
		r.pubsubs[clientID] = pubsub
		r.subscribers[clientID] = eventChan

		go r.forwardRedisMessages(pubsub, clientID, eventChan)
	}

	if err := pubsub.Subscribe(ctx, channelName(auctionID)); err != nil {
		r.logger.Error().Err(err).
			Str("client_id", clientID).
			Str("auction_id", auctionID.String()).
			Msg("Failed to subscribe to Redis channel")
		return err
	}

	r.logger.Info().
		Str("client_id", clientID).
		Str("auction_id", auctionID.String()).
		Msg("Client subscribed to auction")
	return nil
}

// Unsubscribe stops delivery for a client and releases its pubsub connection
func (r *RedisBroadcaster) Unsubscribe(ctx context.Context, auctionID uuid.UUID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pubsub, exists := r.pubsubs[clientID]
	if !exists {
		return nil
	}

	if err := pubsub.Unsubscribe(ctx, channelName(auctionID)); err != nil {
		r.logger.Error().Err(err).
			Str("client_id", clientID).
			Str("auction_id", auctionID.String()).
			Msg("Error unsubscribing from Redis channel")
	}

	if err := pubsub.Close(); err != nil {
		r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
	}
	delete(r.pubsubs, clientID)
	delete(r.subscribers, clientID)

	r.logger.Info().
		Str("client_id", clientID).
		Str("auction_id", auctionID.String()).
		Msg("Client unsubscribed from auction")
	return nil
}

// forwardRedisMessages forwards Redis messages to the client's local channel
func (r *RedisBroadcaster) forwardRedisMessages(pubsub *redis.PubSub, clientID string, localChan chan outbound.Event) {
	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				r.logger.Info().Str("client_id", clientID).Msg("Redis channel closed for client")
				return
			}

			var event outbound.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to unmarshal Redis message")
				continue
			}

			select {
			case localChan <- event:
			default:
				r.logger.Warn().Str("client_id", clientID).Msg("Local channel full, dropping event")
			}

		case <-r.ctx.Done():
			return
		}
	}
}

// Close tears down every client subscription and the broadcaster itself
func (r *RedisBroadcaster) Close() error {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	for clientID, pubsub := range r.pubsubs {
		if err := pubsub.Close(); err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
		}
		delete(r.pubsubs, clientID)
		delete(r.subscribers, clientID)
	}

	return nil
}

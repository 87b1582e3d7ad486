package outbound

import (
	"context"

	"github.com/google/uuid"
)

// EventType represents the type of event being published
type EventType string

const (
	EventTypeBidPlaced     EventType = "bid.placed"
	EventTypeAuctionClosed EventType = "auction.closed"
)

// Event represents a published auction event
type Event struct {
	Type      EventType              `json:"type"`
	AuctionID uuid.UUID              `json:"auction_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// Publisher defines the interface for publishing auction events
type Publisher interface {
	// Publish publishes an event on the auction's channel
	Publish(ctx context.Context, auctionID uuid.UUID, event Event) error
}

// Subscriber defines the interface for receiving auction events
type Subscriber interface {
	// Subscribe delivers an auction's events to eventChan until the
	// client unsubscribes
	Subscribe(ctx context.Context, auctionID uuid.UUID, clientID string, eventChan chan Event) error

	// Unsubscribe stops delivery for a client and releases its resources
	Unsubscribe(ctx context.Context, auctionID uuid.UUID, clientID string) error
}

package outbound

import (
	"context"

	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/domain/notification"
	"gavel-auction-service/internal/domain/user"

	"github.com/google/uuid"
)

// Query narrows a Find call. Conds are ANDed equality filters keyed by
// column name, Order is a SQL order expression and Preloads name the
// relations to load alongside each row.
type Query struct {
	Conds    map[string]any
	Order    string
	Limit    int
	Preloads []string
}

// Repository is the persistence contract shared by every entity. It is
// implemented once, generically, and composed into each entity repository.
type Repository[T any] interface {
	// Create persists a new entity
	Create(ctx context.Context, entity *T) error

	// GetByID retrieves an entity by ID, loading the named relations.
	// A missing row surfaces as a not-found error.
	GetByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error)

	// Find retrieves entities matching the query
	Find(ctx context.Context, q Query) ([]*T, error)

	// Update persists changes to an existing entity
	Update(ctx context.Context, entity *T) error

	// Delete removes an entity by ID. A missing row surfaces as a
	// not-found error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuctionRepository defines the interface for auction data operations
type AuctionRepository interface {
	Repository[auction.Auction]

	// ListAll retrieves every auction with its owner and bids
	ListAll(ctx context.Context) ([]*auction.Auction, error)

	// ListActive retrieves auctions still marked active
	ListActive(ctx context.Context) ([]*auction.Auction, error)

	// ListByOwner retrieves auctions created by the given user
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*auction.Auction, error)
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	Repository[bid.Bid]

	// ListByAuction retrieves an auction's bids, highest amount first and
	// ties broken by earliest creation
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)

	// GetHighest retrieves the current winning bid for an auction, or nil
	// when the auction has no bids
	GetHighest(ctx context.Context, auctionID uuid.UUID) (*bid.Bid, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Repository[notification.Notification]

	// ListByRecipient retrieves a user's notifications, newest first
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Repository[user.User]

	// GetByEmail retrieves a user by email. A missing row surfaces as a
	// not-found error.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

package inbound

import (
	"context"

	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/domain/notification"
	"gavel-auction-service/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionService defines the interface for auction operations. Every listing
// read first sweeps expired auctions closed.
type AuctionService interface {
	// Create creates a new auction owned by the caller
	Create(ctx context.Context, req CreateAuctionRequest) (*auction.Auction, error)

	// Get retrieves a single auction by ID
	Get(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error)

	// ListAll retrieves every auction
	ListAll(ctx context.Context) ([]*auction.Auction, error)

	// ListActive retrieves auctions that are still open
	ListActive(ctx context.Context) ([]*auction.Auction, error)

	// ListByOwner retrieves the caller's auctions
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*auction.Auction, error)

	// Update updates an auction; only its owner may do so
	Update(ctx context.Context, auctionID, callerID uuid.UUID, req UpdateAuctionRequest) (*auction.Auction, error)

	// Delete deletes an auction; only its owner may do so
	Delete(ctx context.Context, auctionID, callerID uuid.UUID) (*auction.Auction, error)
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid validates and admits a new bid on an auction
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*bid.Bid, error)

	// ListByAuction retrieves an auction's bids, highest first
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)
}

// NotificationService defines the interface for outcome notifications
type NotificationService interface {
	// Dispatch notifies every participant of a closed auction's outcome.
	// The auction's closure must already be persisted.
	Dispatch(ctx context.Context, closed *auction.Auction) error

	// Inbox retrieves the caller's notifications, newest first
	Inbox(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error)

	// MarkRead marks one of the caller's notifications as read
	MarkRead(ctx context.Context, notificationID, callerID uuid.UUID) (*notification.Notification, error)
}

// UserService defines the interface for account operations
type UserService interface {
	// Signup registers a new account with a hashed password
	Signup(ctx context.Context, req SignupRequest) (*user.User, error)
}

// request to create an auction
type CreateAuctionRequest struct {
	OwnerID       uuid.UUID       `json:"owner_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Image         *string         `json:"image,omitempty"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	EndDate       string          `json:"end_date"`
}

// request to update an auction; nil fields are left unchanged
type UpdateAuctionRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Image         *string          `json:"image,omitempty"`
	StartingPrice *decimal.Decimal `json:"starting_price,omitempty"`
}

// request to place a bid
type PlaceBidRequest struct {
	AuctionID uuid.UUID       `json:"auction_id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// request to register an account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

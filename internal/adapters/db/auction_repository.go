package db

import (
	"context"

	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuctionRepository implements the auction repository interface
type AuctionRepository struct {
	*Repository[auction.Auction]
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(gormDB *gorm.DB) *AuctionRepository {
	return &AuctionRepository{Repository: NewRepository[auction.Auction](gormDB, "auction")}
}

// ListAll retrieves every auction with its owner and bids, newest first
func (r *AuctionRepository) ListAll(ctx context.Context) ([]*auction.Auction, error) {
	return r.Find(ctx, outbound.Query{
		Order:    "created_at DESC",
		Preloads: []string{"Owner", "Bids"},
	})
}

// ListActive retrieves auctions still marked active
func (r *AuctionRepository) ListActive(ctx context.Context) ([]*auction.Auction, error) {
	return r.Find(ctx, outbound.Query{
		Conds:    map[string]any{"is_active": true},
		Order:    "created_at DESC",
		Preloads: []string{"Owner", "Bids"},
	})
}

// ListByOwner retrieves auctions created by the given user
func (r *AuctionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*auction.Auction, error) {
	return r.Find(ctx, outbound.Query{
		Conds:    map[string]any{"owner_id": ownerID},
		Order:    "created_at DESC",
		Preloads: []string{"Bids"},
	})
}

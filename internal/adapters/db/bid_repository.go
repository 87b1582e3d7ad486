package db

import (
	"context"

	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidRepository implements the bid repository interface
type BidRepository struct {
	*Repository[bid.Bid]
}

// NewBidRepository creates a new bid repository
func NewBidRepository(gormDB *gorm.DB) *BidRepository {
	return &BidRepository{Repository: NewRepository[bid.Bid](gormDB, "bid")}
}

// ListByAuction retrieves an auction's bids with their owners, highest
// amount first and ties broken by earliest creation
func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	return r.Find(ctx, outbound.Query{
		Conds:    map[string]any{"auction_id": auctionID},
		Order:    "amount DESC, created_at ASC",
		Preloads: []string{"Owner"},
	})
}

// GetHighest retrieves the current winning bid for an auction. Returns nil
// without error when the auction has no bids.
func (r *BidRepository) GetHighest(ctx context.Context, auctionID uuid.UUID) (*bid.Bid, error) {
	bids, err := r.Find(ctx, outbound.Query{
		Conds: map[string]any{"auction_id": auctionID},
		Order: "amount DESC, created_at ASC",
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, nil
	}
	return bids[0], nil
}

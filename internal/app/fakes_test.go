package app

import (
	"context"
	"sort"
	"sync"

	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/domain/notification"
	"gavel-auction-service/internal/domain/user"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. They honor the same
// ordering and not-found contracts as the database adapters.

type memoryAuctionRepo struct {
	mu       sync.Mutex
	auctions map[uuid.UUID]*auction.Auction
}

func newMemoryAuctionRepo() *memoryAuctionRepo {
	return &memoryAuctionRepo{auctions: make(map[uuid.UUID]*auction.Auction)}
}

func (r *memoryAuctionRepo) Create(_ context.Context, entity *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[entity.ID] = entity
	return nil
}

func (r *memoryAuctionRepo) GetByID(_ context.Context, id uuid.UUID, _ ...string) (*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found, ok := r.auctions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("auction")
	}
	return found, nil
}

func (r *memoryAuctionRepo) Find(_ context.Context, _ outbound.Query) ([]*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

func (r *memoryAuctionRepo) Update(_ context.Context, entity *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[entity.ID]; !ok {
		return apperrors.NewNotFoundError("auction")
	}
	r.auctions[entity.ID] = entity
	return nil
}

func (r *memoryAuctionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[id]; !ok {
		return apperrors.NewNotFoundError("auction")
	}
	delete(r.auctions, id)
	return nil
}

func (r *memoryAuctionRepo) ListAll(_ context.Context) ([]*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

func (r *memoryAuctionRepo) ListActive(_ context.Context) ([]*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []*auction.Auction
	for _, current := range r.snapshot() {
		if current.IsActive {
			active = append(active, current)
		}
	}
	return active, nil
}

func (r *memoryAuctionRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*auction.Auction
	for _, current := range r.snapshot() {
		if current.OwnerID == ownerID {
			owned = append(owned, current)
		}
	}
	return owned, nil
}

func (r *memoryAuctionRepo) snapshot() []*auction.Auction {
	all := make([]*auction.Auction, 0, len(r.auctions))
	for _, current := range r.auctions {
		all = append(all, current)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

type memoryBidRepo struct {
	mu   sync.Mutex
	bids map[uuid.UUID]*bid.Bid
}

func newMemoryBidRepo() *memoryBidRepo {
	return &memoryBidRepo{bids: make(map[uuid.UUID]*bid.Bid)}
}

func (r *memoryBidRepo) Create(_ context.Context, entity *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bids[entity.ID] = entity
	return nil
}

func (r *memoryBidRepo) GetByID(_ context.Context, id uuid.UUID, _ ...string) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found, ok := r.bids[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("bid")
	}
	return found, nil
}

func (r *memoryBidRepo) Find(_ context.Context, _ outbound.Query) ([]*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*bid.Bid, 0, len(r.bids))
	for _, current := range r.bids {
		all = append(all, current)
	}
	return all, nil
}

func (r *memoryBidRepo) Update(_ context.Context, entity *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bids[entity.ID]; !ok {
		return apperrors.NewNotFoundError("bid")
	}
	r.bids[entity.ID] = entity
	return nil
}

func (r *memoryBidRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bids[id]; !ok {
		return apperrors.NewNotFoundError("bid")
	}
	delete(r.bids, id)
	return nil
}

func (r *memoryBidRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []*bid.Bid
	for _, current := range r.bids {
		if current.AuctionID == auctionID {
			matching = append(matching, current)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].Amount.Equal(matching[j].Amount) {
			return matching[i].Amount.GreaterThan(matching[j].Amount)
		}
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})
	return matching, nil
}

func (r *memoryBidRepo) GetHighest(ctx context.Context, auctionID uuid.UUID) (*bid.Bid, error) {
	bids, err := r.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, nil
	}
	return bids[0], nil
}

type memoryNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*notification.Notification
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{notifications: make(map[uuid.UUID]*notification.Notification)}
}

func (r *memoryNotificationRepo) Create(_ context.Context, entity *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications[entity.ID] = entity
	return nil
}

func (r *memoryNotificationRepo) GetByID(_ context.Context, id uuid.UUID, _ ...string) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("notification")
	}
	return found, nil
}

func (r *memoryNotificationRepo) Find(_ context.Context, _ outbound.Query) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*notification.Notification, 0, len(r.notifications))
	for _, current := range r.notifications {
		all = append(all, current)
	}
	return all, nil
}

func (r *memoryNotificationRepo) Update(_ context.Context, entity *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[entity.ID]; !ok {
		return apperrors.NewNotFoundError("notification")
	}
	r.notifications[entity.ID] = entity
	return nil
}

func (r *memoryNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[id]; !ok {
		return apperrors.NewNotFoundError("notification")
	}
	delete(r.notifications, id)
	return nil
}

func (r *memoryNotificationRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []*notification.Notification
	for _, current := range r.notifications {
		if current.RecipientID == recipientID {
			matching = append(matching, current)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})
	return matching, nil
}

func (r *memoryNotificationRepo) all() []*notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*notification.Notification, 0, len(r.notifications))
	for _, current := range r.notifications {
		all = append(all, current)
	}
	return all
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, entity *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[entity.ID] = entity
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID, _ ...string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user")
	}
	return found, nil
}

func (r *memoryUserRepo) Find(_ context.Context, _ outbound.Query) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*user.User, 0, len(r.users))
	for _, current := range r.users {
		all = append(all, current)
	}
	return all, nil
}

func (r *memoryUserRepo) Update(_ context.Context, entity *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[entity.ID]; !ok {
		return apperrors.NewNotFoundError("user")
	}
	r.users[entity.ID] = entity
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.NewNotFoundError("user")
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, current := range r.users {
		if current.Email == email {
			return current, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []outbound.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ uuid.UUID, event outbound.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) recorded() []outbound.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot := make([]outbound.Event, len(p.events))
	copy(snapshot, p.events)
	return snapshot
}

func (p *recordingPublisher) countByType(eventType outbound.EventType) int {
	count := 0
	for _, event := range p.recorded() {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

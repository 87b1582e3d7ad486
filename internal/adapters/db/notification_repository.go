package db

import (
	"context"

	"gavel-auction-service/internal/domain/notification"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification repository interface
type NotificationRepository struct {
	*Repository[notification.Notification]
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(gormDB *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Repository: NewRepository[notification.Notification](gormDB, "notification")}
}

// ListByRecipient retrieves a user's notifications with their auctions,
// newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	return r.Find(ctx, outbound.Query{
		Conds:    map[string]any{"recipient_id": recipientID},
		Order:    "created_at DESC",
		Preloads: []string{"Auction"},
	})
}

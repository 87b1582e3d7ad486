package notification

import (
	"time"

	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/user"

	"github.com/google/uuid"
)

// Outcome is the auction result a notification reports to its recipient
type Outcome string

const (
	OutcomeWon    Outcome = "won"
	OutcomeOutbid Outcome = "outbid"
)

// Notification is created once, at auction closure, for each participating
// bid. The only mutation it ever sees is the read marker.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recipient_id"`
	AuctionID   uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"auction_id"`
	Outcome     Outcome   `gorm:"type:varchar(16);not null;<-:create" json:"outcome"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`

	Recipient *user.User       `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
	Auction   *auction.Auction `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"auction,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// IsFor returns true if the notification belongs to the given recipient
func (n *Notification) IsFor(userID uuid.UUID) bool {
	return n.RecipientID == userID
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
}

package bid

import (
	"time"

	"gavel-auction-service/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid represents one immutable monetary offer on an auction. Every column is
// create-only; an admitted bid is never updated or deleted on its own (it is
// removed only when its auction is deleted).
type Bid struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null;<-:create" json:"amount"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index;<-:create" json:"owner_id"`
	AuctionID uuid.UUID       `gorm:"type:uuid;not null;index;<-:create" json:"auction_id"`
	CreatedAt time.Time       `json:"created_at"`

	Owner *user.User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Bid) TableName() string {
	return "bids"
}

// Exceeds returns true if the bid amount is strictly greater than floor.
func (b *Bid) Exceeds(floor decimal.Decimal) bool {
	return b.Amount.GreaterThan(floor)
}

// IsOwnedBy returns true if the bid was placed by the given user
func (b *Bid) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID == userID
}

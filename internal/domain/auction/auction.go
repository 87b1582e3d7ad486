package auction

import (
	"time"

	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auction represents a timed listing that accepts competing bids until its
// end date. EndDate and OwnerID are fixed at creation; closure is a one-way
// transition of IsActive from true to false.
type Auction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Image         *string         `gorm:"type:text" json:"image,omitempty"`
	StartingPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"starting_price"`
	EndDate       time.Time       `gorm:"type:timestamp with time zone;not null;<-:create" json:"end_date"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index;<-:create" json:"owner_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Owner *user.User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Bids  []bid.Bid  `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`
}

func (Auction) TableName() string {
	return "auctions"
}

// IsExpired returns true if the auction's active window has elapsed at now
func (a *Auction) IsExpired(now time.Time) bool {
	return now.After(a.EndDate)
}

// IsOwnedBy returns true if the auction belongs to the given user
func (a *Auction) IsOwnedBy(userID uuid.UUID) bool {
	return a.OwnerID == userID
}

// CloseIfExpired transitions the auction from active to closed when its end
// date has passed. It reports whether the transition happened; an already
// closed or still running auction is left untouched.
func (a *Auction) CloseIfExpired(now time.Time) bool {
	if !a.IsActive || !a.IsExpired(now) {
		return false
	}
	a.IsActive = false
	a.UpdatedAt = now
	return true
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a customer review of one completed order.
// At most one per order (unique index on OrderID); rating in [1,5].
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Rating    int       `gorm:"not null"`
	Comment   *string
	CreatedAt time.Time

	Order *Order `gorm:"foreignKey:OrderID"`
}

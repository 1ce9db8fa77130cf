package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon is a discount code. Codes are globally unique (DB unique index backs
// the generate-and-retry loop in the coupon service). The validity window is
// optional: a nil bound means unbounded on that side.
type Coupon struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code            string          `gorm:"uniqueIndex;not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Active          bool            `gorm:"not null;default:true"`
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Redeemable reports whether the coupon can be applied at the given instant.
func (c *Coupon) Redeemable(at time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ValidFrom != nil && at.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && at.After(*c.ValidUntil) {
		return false
	}
	return true
}

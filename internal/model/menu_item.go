package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish on the restaurant's menu. Price is the authoritative unit
// price at the moment an order is created; order line items snapshot it so that
// later price edits never rewrite historical totals.
// Invariant: Price >= 0.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation books a table for a customer at a date and time.
// Overlapping reservations for the same table are not rejected; the floor
// manager resolves double bookings manually.
type Reservation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	TableNumber int       `gorm:"not null"`
	Date        string    `gorm:"type:date;not null"` // YYYY-MM-DD
	Time        string    `gorm:"type:varchar(5);not null"` // HH:MM, 24h
	GuestCount  int       `gorm:"not null;default:2"`
	CreatedAt   time.Time

	Customer *User `gorm:"foreignKey:CustomerID"`
}

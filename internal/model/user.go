package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
)

// User stores system accounts: staff and customers alike.
// Role determines what the account may do; see internal/role for the
// capability table. Users are never physically deleted, only deactivated.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	Email        *string   `gorm:"uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         role.Role `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

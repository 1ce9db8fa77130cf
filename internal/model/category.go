package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items, e.g. "Appetizers", "Main Courses".
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the table name regular (GORM would produce "categories" anyway,
// pinned explicitly so migrations stay stable).
func (Category) TableName() string { return "categories" }

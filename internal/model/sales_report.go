package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReport is the durable artifact written by the nightly report job:
// one row per calendar day with the aggregated order count, revenue, and the
// most-ordered dish. PDFPath points at the rendered summary, relative to
// REPORT_STORAGE_PATH.
type SalesReport struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date         string          `gorm:"type:date;uniqueIndex;not null"` // YYYY-MM-DD
	TotalOrders  int             `gorm:"not null"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TopDish      *string
	PDFPath      *string `gorm:"column:pdf_path"`
	CreatedAt    time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the closed status set for an order. Transitions between
// statuses are gated by the workflow table in internal/service; nothing else
// writes the status column.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusReady      OrderStatus = "ready"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseStatus validates a requested status against the closed set.
func ParseStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusInProgress, StatusReady, StatusCompleted, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is one customer order and its priced contents — a single consistency
// boundary. The order plus its items are always written in one transaction.
// Orders are never physically deleted in normal operation.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WaiterID    *uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID  *uuid.UUID  `gorm:"type:uuid;index"`
	TableNumber int         `gorm:"not null"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Waiter   *User       `gorm:"foreignKey:WaiterID"`
	Customer *User       `gorm:"foreignKey:CustomerID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Total is the derived order total: sum of quantity × snapshotted unit price
// across line items. Exact decimal arithmetic; zero for an empty order.
// The total is never stored — it is recomputed wherever it is rendered.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItem is one line of an order: a menu item reference plus quantity.
// UnitPrice is snapshotted from the menu item at order creation so historical
// totals survive later price changes.
// Invariant: Quantity > 0.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}

// Subtotal returns quantity × unit price for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

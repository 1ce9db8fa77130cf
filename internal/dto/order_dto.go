package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	TableNumber int                `json:"table_number" validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"items"        validate:"required,min=1,dive"`
}

type ReplaceItemsRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderFilter struct {
	Status string `form:"status"`
	Date   string `form:"date"` // YYYY-MM-DD
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	TableNumber int                 `json:"table_number"`
	Status      string              `json:"status"`
	WaiterID    *string             `json:"waiter_id,omitempty"`
	CustomerID  *string             `json:"customer_id,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name"        validate:"required,min=2,max=200"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Active      *bool            `json:"active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
}

type MenuItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Active      bool            `json:"active"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IssueCouponRequest struct {
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"required,gt=0,max=100"`
	ValidFrom       *time.Time      `json:"valid_from"`
	ValidUntil      *time.Time      `json:"valid_until"`
}

type RedeemCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CouponResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Active          bool            `json:"active"`
	ValidFrom       *time.Time      `json:"valid_from,omitempty"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
}

// RedeemCouponResponse carries the discount the caller should apply.
type RedeemCouponResponse struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CustomerSpend is one row of the top-customers report, ranked by total spend
// descending, ties broken by earliest order creation time.
type CustomerSpend struct {
	CustomerID string          `json:"customer_id"`
	Username   string          `json:"username"`
	OrderCount int             `json:"order_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// DishPopularity is one row of the popular-dishes report, ranked by how many
// orders included the dish (occurrence count, not quantity-weighted).
type DishPopularity struct {
	MenuItemID   string `json:"menu_item_id"`
	Name         string `json:"name"`
	TimesOrdered int    `json:"times_ordered"`
}

// DailySummaryResponse aggregates one calendar day in the configured timezone.
type DailySummaryResponse struct {
	Date         string          `json:"date"`
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

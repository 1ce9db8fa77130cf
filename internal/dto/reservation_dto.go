package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateReservationRequest struct {
	TableNumber int    `json:"table_number" validate:"required,gt=0"`
	Date        string `json:"date"         validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"         validate:"required,datetime=15:04"`
	GuestCount  int    `json:"guest_count"  validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReservationResponse struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	TableNumber int    `json:"table_number"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	GuestCount  int    `json:"guest_count"`
	CreatedAt   string `json:"created_at"`
}

package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SubmitFeedbackRequest struct {
	Rating  int     `json:"rating"  validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FeedbackResponse struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
}

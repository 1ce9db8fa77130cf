package worker

// notification_worker.go
// Processes notification jobs from QueueNotifications: order confirmations and
// status-change notices delivered by email. Delivery is best-effort with a
// bounded retry; jobs that keep failing land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/prajapatkavitha/restaurant-management-project/internal/infra"
)

// MaxNotificationRetries bounds delivery attempts before a job moves to the DLQ.
const MaxNotificationRetries = 3

// NotificationPayload is the job envelope for both notification types.
type NotificationPayload struct {
	OrderID     string `json:"order_id"`
	ToEmail     string `json:"to_email"`
	Status      string `json:"status"`
	TableNumber int    `json:"table_number"`
	Total       string `json:"total"`
}

type NotificationWorker struct {
	mailer *infra.Mailer
}

func NewNotificationWorker(mailer *infra.Mailer) *NotificationWorker {
	return &NotificationWorker{mailer: mailer}
}

// Process sends the email for one job, retrying up to MaxNotificationRetries.
func (w *NotificationWorker) Process(ctx context.Context, rdb *redis.Client, jobType string, raw json.RawMessage) {
	var payload NotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Debug().Str("order_id", payload.OrderID).Msg("notification_worker: no recipient email — skipping")
		return
	}

	subject, body := composeNotification(jobType, payload)

	var lastErr error
	for attempt := 1; attempt <= MaxNotificationRetries; attempt++ {
		if lastErr = w.mailer.Send(payload.ToEmail, subject, body, ""); lastErr == nil {
			log.Info().
				Str("to", payload.ToEmail).
				Str("order_id", payload.OrderID).
				Str("type", jobType).
				Msg("notification_worker: email sent")
			return
		}
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Str("order_id", payload.OrderID).
			Msg("notification_worker: send failed")
	}

	SendToDLQ(ctx, rdb, QueueNotifications, jobType, raw,
		fmt.Sprintf("max retries (%d) exceeded: %s", MaxNotificationRetries, lastErr),
		MaxNotificationRetries)
}

func composeNotification(jobType string, p NotificationPayload) (subject, body string) {
	switch jobType {
	case JobOrderConfirmed:
		subject = fmt.Sprintf("Order confirmed: #%s", p.OrderID)
		body = fmt.Sprintf(
			"Thank you for your order!\n\nOrder ID: %s\nTable: %d\nTotal: %s\nStatus: %s\n\nWe will notify you when your order is ready.",
			p.OrderID, p.TableNumber, p.Total, p.Status)
	case JobStatusChanged:
		subject = fmt.Sprintf("Order #%s is now %s", p.OrderID, p.Status)
		body = fmt.Sprintf(
			"Your order status changed.\n\nOrder ID: %s\nNew status: %s\n",
			p.OrderID, p.Status)
	}
	return subject, body
}

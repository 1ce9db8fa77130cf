package worker

// dlq.go
// Notification jobs that exhaust their delivery retries land here instead of
// being dropped, so a failed order-confirmation or status-change email can be
// inspected and replayed by hand. One Redis list per source queue, keyed
// dlq:{queue}; today that means dlq:jobs:notifications.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is the stored record for one failed job: the original payload plus
// enough context (queue, type, reason, attempt count) to diagnose it without
// grepping logs.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339, UTC
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a failed job on the dead letter list. Errors are logged,
// not returned: by the time a job reaches the DLQ there is no caller left
// that could act on a failure.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry failed")
		return
	}

	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, encoded).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job parked in dead letter queue")
}

// DLQLength reports how many jobs are parked for a queue, for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

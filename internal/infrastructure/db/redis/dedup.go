package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trainerdesk/coach-api/internal/core/ports"
)

const assignmentTTL = time.Hour

// AssignmentDeduper remembers which workout an Idempotency-Key produced.
// Key format: assign:<user_id>:<idempotency_key>, value: JSON AssignmentRecord.
type AssignmentDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssignmentDeduper creates an AssignmentDeduper wrapping the given Redis client.
func NewAssignmentDeduper(client *redis.Client) *AssignmentDeduper {
	return &AssignmentDeduper{client: client, ttl: assignmentTTL}
}

// Lookup returns the assignment recorded for the key, if any.
func (d *AssignmentDeduper) Lookup(ctx context.Context, userID int64, key string) (ports.AssignmentRecord, bool, error) {
	raw, err := d.client.Get(ctx, assignmentKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.AssignmentRecord{}, false, nil
	}
	if err != nil {
		return ports.AssignmentRecord{}, false, fmt.Errorf("dedup lookup: %w", err)
	}

	var rec ports.AssignmentRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.WorkoutID == 0 {
		return ports.AssignmentRecord{}, false, fmt.Errorf("dedup lookup: corrupt value %q", raw)
	}
	return rec, true, nil
}

// Remember records the assignment for the key. An existing entry is kept so
// the first assignment stays authoritative.
func (d *AssignmentDeduper) Remember(ctx context.Context, userID int64, key string, rec ports.AssignmentRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("dedup remember: %w", err)
	}
	if err := d.client.SetNX(ctx, assignmentKey(userID, key), payload, d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup remember: %w", err)
	}
	return nil
}

func assignmentKey(userID int64, key string) string {
	return fmt.Sprintf("assign:%d:%s", userID, key)
}

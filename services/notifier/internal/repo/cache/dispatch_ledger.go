package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DispatchLedger remembers which documents already produced a push so a
// redelivered trigger does not notify twice.
type DispatchLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDispatchLedger(client *redis.Client, ttl time.Duration) *DispatchLedger {
	return &DispatchLedger{client: client, ttl: ttl}
}

func ledgerKey(collection, documentID string) string {
	return fmt.Sprintf("dispatch:%s:%s", collection, documentID)
}

// Claim returns true the first time it is called for a document within the TTL.
func (l *DispatchLedger) Claim(ctx context.Context, collection, documentID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, ledgerKey(collection, documentID), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s/%s: %w", collection, documentID, err)
	}
	return ok, nil
}

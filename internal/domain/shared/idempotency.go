package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried mutation is applied once
type IdempotencyStore interface {
	// MarkProcessed records key with a TTL.
	// Returns true if the key was newly recorded, false if it was seen before.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget drops a key so a request that failed can be retried with it
	Forget(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

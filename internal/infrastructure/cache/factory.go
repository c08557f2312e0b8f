package cache

import (
	"context"
	"fmt"

	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the store named by ledger.idempotency_backend.
// A redis backend that cannot be reached is an error; there is no silent fallback.
func NewIdempotencyStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Ledger.IdempotencyBackend {
	case config.IdempotencyBackendRedis:
		store, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	case config.IdempotencyBackendMemory, "":
		logger.Info("Using in-memory idempotency store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.Ledger.IdempotencyBackend)
	}
}

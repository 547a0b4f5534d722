package store

import (
	"context"
	"time"

	appctx "storeops/internal/core/context"
)

// Repository reads stores from the inventory backend.
type Repository interface {
	ListStores(ctx context.Context, sess *appctx.Session) ([]Store, error)
}

// Cache is the subset of a key/value cache the directory needs.
// Any Get error is treated as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

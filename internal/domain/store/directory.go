package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/pkg/logger"
)

const directoryCachePrefix = "storeops:stores:v1:"

// cacheKey scopes the cached list to the user, whose store visibility may differ.
func cacheKey(sess *appctx.Session) string {
	return directoryCachePrefix + sess.UserID
}

// Directory lists and resolves stores, caching the list for ttl.
type Directory struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// NewDirectory creates a store directory. cache may be nil.
func NewDirectory(repo Repository, cache Cache, ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Directory{repo: repo, cache: cache, ttl: ttl}
}

// List returns all stores visible to the session.
func (d *Directory) List(ctx context.Context, sess *appctx.Session) ([]Store, error) {
	if stores, ok := d.fromCache(ctx, sess); ok {
		return stores, nil
	}

	stores, err := d.repo.ListStores(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	if d.cache != nil {
		if raw, err := json.Marshal(stores); err == nil {
			if err := d.cache.Set(ctx, cacheKey(sess), string(raw), d.ttl); err != nil {
				logger.Warn(ctx, "store directory cache write failed", "error", err)
			}
		}
	}
	return stores, nil
}

// Resolve returns the store with the given ID or NOT_FOUND.
func (d *Directory) Resolve(ctx context.Context, sess *appctx.Session, storeID id.Ref) (Store, error) {
	stores, err := d.List(ctx, sess)
	if err != nil {
		return Store{}, err
	}
	for _, s := range stores {
		if s.ID == storeID {
			return s, nil
		}
	}
	return Store{}, apperror.NewNotFound("store", storeID.String())
}

// Invalidate drops the cached store list of the session's user.
func (d *Directory) Invalidate(ctx context.Context, sess *appctx.Session) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, cacheKey(sess)); err != nil {
		logger.Debug(ctx, "store directory cache delete failed", "error", err)
	}
}

func (d *Directory) fromCache(ctx context.Context, sess *appctx.Session) ([]Store, bool) {
	if d.cache == nil {
		return nil, false
	}
	raw, err := d.cache.Get(ctx, cacheKey(sess))
	if err != nil || raw == "" {
		return nil, false
	}
	var stores []Store
	if err := json.Unmarshal([]byte(raw), &stores); err != nil {
		logger.Warn(ctx, "store directory cache entry unreadable", "error", err)
		return nil, false
	}
	return stores, true
}

package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through a fast local tier before a shared remote tier.
// Writes go to both; the local tier keeps a shorter TTL so restarts and
// multi-replica deployments stay coherent via the remote tier.
type LayeredCache struct {
	local    Service
	remote   Service
	localTTL time.Duration
}

// NewLayeredCache creates a two-tier cache.
func NewLayeredCache(local, remote Service, localTTL time.Duration) *LayeredCache {
	return &LayeredCache{local: local, remote: remote, localTTL: localTTL}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	localTTL := lc.localTTL
	if localTTL <= 0 || localTTL > expiration {
		localTTL = expiration
	}
	if err := lc.local.Set(ctx, key, value, localTTL); err != nil {
		return err
	}
	return lc.remote.Set(ctx, key, value, expiration)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.local.Get(ctx, key, dest); err == nil {
		return nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	if err := lc.remote.Get(ctx, key, dest); err != nil {
		return err
	}

	// Promote remote hit to the local tier, best-effort.
	_ = lc.local.Set(ctx, key, dest, lc.localTTL)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	if err := lc.local.Delete(ctx, keys...); err != nil {
		return err
	}
	return lc.remote.Delete(ctx, keys...)
}

package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines the cache operations the report cache exercises.
// Values are stored as JSON so memory and redis tiers stay interchangeable.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

package cache

import "time"

// MemoryOption configures MemoryCache.
type MemoryOption func(*MemoryConfig)

// MemoryConfig holds in-memory cache configuration.
type MemoryConfig struct {
	MaxSize         int
	CleanupInterval time.Duration
}

// WithMaxSize sets the maximum number of entries before LRU eviction.
func WithMaxSize(n int) MemoryOption {
	return func(c *MemoryConfig) {
		c.MaxSize = n
	}
}

// WithCleanupInterval sets how often expired entries are swept.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *MemoryConfig) {
		c.CleanupInterval = d
	}
}

// RedisConfig holds redis cache configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// memoryItem stores a cached JSON value with expiration.
type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return time.Now().After(m.expireAt)
}

// MemoryCache implements Service using in-memory storage with LRU eviction.
type MemoryCache struct {
	data          map[string]*memoryItem
	access        map[string]time.Time
	mutex         sync.Mutex
	maxSize       int
	cleanupTicker *time.Ticker
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:          make(map[string]*memoryItem),
		access:        make(map[string]time.Time),
		maxSize:       cfg.MaxSize,
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
	}

	go mc.cleanupExpired()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	expireAt := time.Now().Add(expiration)
	if expiration <= 0 {
		expireAt = time.Now().Add(24 * time.Hour)
	}

	mc.data[key] = &memoryItem{value: b, expireAt: expireAt}
	mc.access[key] = time.Now()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, exists := mc.data[key]
	if !exists || item.expired() {
		if exists {
			delete(mc.data, key)
			delete(mc.access, key)
		}
		return ErrCacheMiss
	}

	mc.access[key] = time.Now()
	return json.Unmarshal(item.value, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
		delete(mc.access, key)
	}
	return nil
}

func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldest time.Time
	for key, at := range mc.access {
		if oldestKey == "" || at.Before(oldest) {
			oldestKey = key
			oldest = at
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
		delete(mc.access, oldestKey)
	}
}

func (mc *MemoryCache) cleanupExpired() {
	for range mc.cleanupTicker.C {
		mc.mutex.Lock()
		for key, item := range mc.data {
			if item.expired() {
				delete(mc.data, key)
				delete(mc.access, key)
			}
		}
		mc.mutex.Unlock()
	}
}

// Close stops the background cleanup.
func (mc *MemoryCache) Close() {
	mc.cleanupTicker.Stop()
}

package aggregator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Cache is a keyed fetch cache with a per-call staleness window.
// Concurrent fetches of the same key are collapsed into one upstream call.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[T]
	group   singleflight.Group
	now     func() time.Time
	onHit   func(key string)
	onMiss  func(key string)
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

// WithStats installs hit and miss callbacks. Either may be nil.
func (c *Cache[T]) WithStats(onHit, onMiss func(key string)) *Cache[T] {
	c.onHit = onHit
	c.onMiss = onMiss
	return c
}

// Fetch returns the cached value for key when it is younger than maxAge,
// otherwise invokes fn and stores the result. A zero maxAge always
// refetches.
func (c *Cache[T]) Fetch(
	ctx context.Context,
	key string,
	maxAge time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && maxAge > 0 && c.now().Sub(entry.fetchedAt) < maxAge {
		if c.onHit != nil {
			c.onHit(key)
		}
		return entry.value, nil
	}
	if c.onMiss != nil {
		c.onMiss(key)
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry[T]{
			value:     value,
			fetchedAt: c.now(),
		}
		c.mu.Unlock()
		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate drops the cached value for key, if any.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

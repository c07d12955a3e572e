package cache

import (
	"context"
	"sync"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
)

// entry is a cached value with its expiry
type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache implements shared.Cache in process memory.
// Entries are not shared across instances.
type MemoryCache struct {
	entries   sync.Map // string -> *entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	now       func() time.Time
}

// NewMemoryCache creates an in-memory cache that sweeps expired entries every interval
func NewMemoryCache(sweepInterval time.Duration) *MemoryCache {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	c := &MemoryCache{
		stopChan: make(chan struct{}),
		now:      time.Now,
	}

	c.wg.Add(1)
	go c.sweepLoop(sweepInterval)

	return c
}

// Get returns the cached value for key
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	e := v.(*entry)
	if e.expired(c.now()) {
		c.entries.CompareAndDelete(key, v)
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores value under key; a non-positive ttl never expires
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := &entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Store(key, e)
	return nil
}

// Delete removes keys
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.entries.Delete(k)
	}
	return nil
}

// Close stops the sweeper. Safe to call multiple times.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache) sweep() {
	now := c.now()
	c.entries.Range(func(k, v any) bool {
		if v.(*entry).expired(now) {
			c.entries.CompareAndDelete(k, v)
		}
		return true
	})
}

var _ shared.Cache = (*MemoryCache)(nil)

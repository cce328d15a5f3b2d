package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	v   []byte
	exp time.Time
}

func (e entry) expired(now time.Time) bool { return !e.exp.IsZero() && now.After(e.exp) }

// TTLCache is an in-process byte cache. When maxSize is reached the entry
// closest to expiry is evicted.
type TTLCache struct {
	mu      sync.RWMutex
	m       map[string]entry
	maxSize int
	now     func() time.Time
}

func NewTTLCache(maxSize int) *TTLCache {
	return &TTLCache{m: make(map[string]entry), maxSize: maxSize, now: time.Now}
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	now := c.now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(now) {
		c.dropExpired(key, now)
		return nil, false, nil
	}
	return e.v, true, nil
}

// dropExpired deletes key only if the stored entry is still expired at now.
// A concurrent SetBytes may have refreshed it since the read.
func (c *TTLCache) dropExpired(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[key]; ok && e.expired(now) {
		delete(c.m, key)
	}
}

func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[key]; !exists && c.maxSize > 0 && len(c.m) >= c.maxSize {
		c.evictLocked()
	}
	c.m[key] = entry{v: value, exp: exp}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *TTLCache) Close() error {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

func (c *TTLCache) evictLocked() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for k, e := range c.m {
		// entries without expiry are evicted last
		exp := e.exp
		if exp.IsZero() {
			exp = time.Unix(1<<62, 0)
		}
		if !found || exp.Before(soonest) {
			victim, soonest, found = k, exp, true
		}
	}
	if found {
		delete(c.m, victim)
	}
}

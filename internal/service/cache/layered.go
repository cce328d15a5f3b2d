package cache

import (
	"context"
	"time"
)

// LayeredCache reads memory first, then the shared backend, and writes through to both.
type LayeredCache struct {
	l1  BytesCache
	l2  BytesCache
	ttl time.Duration
}

// NewLayeredCache builds a two-level cache. l1TTL bounds how long an entry promoted
// from l2 stays in memory.
func NewLayeredCache(l1, l2 BytesCache, l1TTL time.Duration) *LayeredCache {
	return &LayeredCache{l1: l1, l2: l2, ttl: l1TTL}
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := lc.l1.GetBytes(ctx, key); err == nil && ok {
		return b, true, nil
	}
	b, ok, err := lc.l2.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = lc.l1.SetBytes(ctx, key, b, lc.ttl)
	return b, true, nil
}

func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// shared layer first so a failed write is not masked by memory
	if err := lc.l2.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	l1TTL := ttl
	if lc.ttl > 0 && (l1TTL <= 0 || lc.ttl < l1TTL) {
		l1TTL = lc.ttl
	}
	return lc.l1.SetBytes(ctx, key, value, l1TTL)
}

func (lc *LayeredCache) Close() error {
	_ = lc.l1.Close()
	return lc.l2.Close()
}

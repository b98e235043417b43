package ristretto

import (
	"fmt"
	"time"

	"github.com/caasmo/webjarcors/cache"
	"github.com/dgraph-io/ristretto/v2"
)

// Size levels accepted by New. MaxCost is in bytes when callers pass the
// value length as cost.
var levels = map[string]struct {
	numCounters int64
	maxCost     int64
}{
	"small":      {numCounters: 1e4, maxCost: 8 << 20},
	"medium":     {numCounters: 1e5, maxCost: 64 << 20},
	"large":      {numCounters: 1e6, maxCost: 256 << 20},
	"very-large": {numCounters: 1e7, maxCost: 1 << 30},
}

// Levels lists the accepted size levels.
func Levels() []string {
	return []string{"small", "medium", "large", "very-large"}
}

type Cache[V any] struct {
	cache *ristretto.Cache[string, V]
}

var _ cache.Cache[string, []byte] = (*Cache[[]byte])(nil)

func (rc *Cache[V]) Get(key string) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[V]) Set(key string, value V, cost int64) bool {
	return rc.cache.Set(key, value, cost)
}

func (rc *Cache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

func (rc *Cache[V]) Del(key string) {
	rc.cache.Del(key)
}

// Wait blocks until pending Sets are applied.
func (rc *Cache[V]) Wait() {
	rc.cache.Wait()
}

// Close stops the cache's background goroutines.
func (rc *Cache[V]) Close() {
	rc.cache.Close()
}

// New creates a string-keyed cache sized by level.
func New[V any](level string) (*Cache[V], error) {
	l, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("ristretto: unknown cache level %q", level)
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: l.numCounters,
		MaxCost:     l.maxCost,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}

	return &Cache[V]{cache: c}, nil
}

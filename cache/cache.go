package cache

import "time"

// Cache is the byte-budgeted key/value store used for served assets. Values
// are admitted asynchronously; a Set that returns true may not be visible to
// Get until the implementation has processed it.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)

	// Set stores a value with cost, returning false if it was dropped.
	Set(key K, value V, cost int64) bool

	SetWithTTL(key K, value V, cost int64, ttl time.Duration) bool

	Del(key K)
}

// Package cache provides the layered (memory + disk) cache used to avoid
// refetching article pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the minimal store the fetcher needs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from an article URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "pubscrape:v1:" + hex.EncodeToString(sum[:])
}

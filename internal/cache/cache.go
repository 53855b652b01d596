package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores encoded values by key
type Cache interface {
	// Get returns the value and true on a hit
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Flush drops every entry written through this cache
	Flush(ctx context.Context) error
}

// Key joins a prefix and parameters into a cache key, e.g. "lookup:districts:province_id:4"
func Key(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a TTL key-value cache. Values are opaque byte blobs so in-memory
// and Redis backends behave identically. Get treats missing and expired
// entries the same way.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// GetJSON reads key from the store and unmarshals it into out. A decode
// failure counts as a miss.
func GetJSON(ctx context.Context, s Store, key string, out any) bool {
	data, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key. Marshal failures are dropped;
// the cache is best-effort.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(ctx, key, data, ttl)
}

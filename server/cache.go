package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// resultCache memoizes query results, keyed on the sample's content hash,
// so repeated queries of the same clip skip the matcher entirely. Grounded
// on the pack's redis cache wrapper (internal/cache/redis.go); optional —
// a server started with no Redis address just always misses.
type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newResultCache(addr string) *resultCache {
	if addr == "" {
		return &resultCache{}
	}
	return &resultCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    5 * time.Minute,
	}
}

func sampleCacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "fprint:query:" + hex.EncodeToString(sum[:])
}

func (c *resultCache) get(ctx context.Context, key string) ([]string, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var ranked []string
	if err := json.Unmarshal(raw, &ranked); err != nil {
		return nil, false
	}
	return ranked, true
}

func (c *resultCache) set(ctx context.Context, key string, ranked []string) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

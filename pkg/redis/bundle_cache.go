package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
)

// DefaultKeyPrefix is used when no prefix is configured.
const DefaultKeyPrefix = "tolgee:bundle"

var _ loader.Cache = (*BundleCache)(nil)

// BundleCache persists bundles in Redis as flat JSON objects under "<prefix>:<lang>".
type BundleCache struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewBundleCache wraps client. A zero ttl stores bundles without expiration.
func NewBundleCache(client redis.UniversalClient, prefix string, ttl time.Duration) *BundleCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &BundleCache{db: client, prefix: prefix, ttl: ttl}
}

// NewBundleCacheWithConfig takes prefix and TTL from cfg.
func NewBundleCacheWithConfig(client redis.UniversalClient, cfg Config) *BundleCache {
	return NewBundleCache(client, cfg.KeyPrefix, cfg.BundleTTL)
}

// Key returns the Redis key holding lang.
func (c *BundleCache) Key(lang string) string {
	return c.prefix + ":" + lang
}

// Get returns the cached bundle of lang. A missing key is not an error.
func (c *BundleCache) Get(ctx context.Context, lang string) (dictionary.Bundle, bool, error) {
	raw, err := c.db.Get(ctx, c.Key(lang)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dictionary.Bundle{}, false, nil
	}
	if err != nil {
		return dictionary.Bundle{}, false, errors.Join(ErrCacheRead, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return dictionary.Bundle{}, false, errors.Join(ErrCacheRead, err)
	}
	return dictionary.NewBundle(entries), true, nil
}

// Put stores b for lang, replacing any previous value.
func (c *BundleCache) Put(ctx context.Context, lang string, b dictionary.Bundle) error {
	raw, err := json.Marshal(b.Map())
	if err != nil {
		return errors.Join(ErrCacheWrite, err)
	}
	if err := c.db.Set(ctx, c.Key(lang), raw, c.ttl).Err(); err != nil {
		return errors.Join(ErrCacheWrite, err)
	}
	return nil
}

// Delete drops the cached bundle of lang.
func (c *BundleCache) Delete(ctx context.Context, lang string) error {
	if err := c.db.Del(ctx, c.Key(lang)).Err(); err != nil {
		return errors.Join(ErrCacheWrite, err)
	}
	return nil
}

package redis

import (
	"context"
	"errors"
	"time"
)

const healthcheckTTL = 10 * time.Second

// HealthcheckKey is written by Healthcheck. It sits under the bundle prefix
// but can never collide with a language code.
func (c *BundleCache) HealthcheckKey() string {
	return c.prefix + ":_healthcheck"
}

// Healthcheck reports whether bundles can be cached: the server must answer a
// ping and accept a short-lived write under the bundle prefix. A read-only
// replica fails the second step.
func (c *BundleCache) Healthcheck(ctx context.Context) error {
	if err := c.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if err := c.db.Set(ctx, c.HealthcheckKey(), time.Now().Unix(), healthcheckTTL).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, ErrCacheWrite, err)
	}
	return nil
}

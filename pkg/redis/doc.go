// Package redis provides helpers for connecting to a Redis server and a
// Redis-backed bundle cache for the loader package.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - BundleCache, which implements loader.Cache so bundles survive restarts
//     and are shared between instances.
//   - BundleCache.Healthcheck, a readiness probe that pings the server and
//     checks the bundle keyspace accepts writes.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cache := redis.NewBundleCacheWithConfig(client, cfg)
//	tc := tolgee.New(src, tolgee.WithCache(cache))
//
// Bundles are stored as flat JSON objects:
//
//	tolgee:bundle:cs -> {"hello_world":"Ahoj světe!"}
//
// # Errors
//
// Sentinel errors (e.g. ErrRedisNotReady, ErrCacheRead) wrap the underlying
// go-redis errors using errors.Join.
package redis

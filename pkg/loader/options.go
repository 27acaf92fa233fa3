package loader

import (
	"log/slog"
	"time"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFetchTimeout bounds each fetch. Zero or negative disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// WithCache puts a persistent cache in front of the fetcher.
func WithCache(cache Cache) Option {
	return func(c *Coordinator) {
		c.cache = cache
	}
}

// WithOnSettled registers the hook called after each load finished.
func WithOnSettled(fn func(Settled)) Option {
	return func(c *Coordinator) {
		c.onSettled = fn
	}
}

package loader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jcunliffe1/tolgee-go/pkg/async"
	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/logger"
)

// DefaultFetchTimeout bounds a single bundle fetch.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves the bundle of one language from a remote or local source.
type Fetcher interface {
	Fetch(ctx context.Context, lang string) (dictionary.Bundle, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, lang string) (dictionary.Bundle, error)

func (f FetcherFunc) Fetch(ctx context.Context, lang string) (dictionary.Bundle, error) {
	return f(ctx, lang)
}

// Cache is an optional persistent layer in front of the Fetcher.
// A hit on first load avoids the network; successful fetches are written through.
type Cache interface {
	Get(ctx context.Context, lang string) (dictionary.Bundle, bool, error)
	Put(ctx context.Context, lang string, b dictionary.Bundle) error
}

// Settled describes a finished load. It is reported after the store was updated
// and before the shared future resolves. Current is what the store holds now:
// after a failed reload that is still Previous.
type Settled struct {
	Language    string
	Previous    dictionary.Bundle
	HadPrevious bool
	Current     dictionary.Bundle
	Err         error
	FromCache   bool
}

// Coordinator turns bundle requests into at most one in-flight fetch per language.
type Coordinator struct {
	mu        sync.Mutex
	store     *dictionary.Store
	fetcher   Fetcher
	cache     Cache
	timeout   time.Duration
	logger    *slog.Logger
	onSettled func(Settled)
	fetches   map[string]int
}

// New creates a Coordinator writing into store and fetching through fetcher.
func New(store *dictionary.Store, fetcher Fetcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   store,
		fetcher: fetcher,
		timeout: DefaultFetchTimeout,
		logger:  logger.Discard(),
		fetches: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureLoaded returns a future for the bundle of lang.
// A Loaded language yields an already resolved future, a Pending one yields the
// shared in-flight future, and an Unrequested or Failed one starts a new fetch.
// The fetch does not inherit cancellation from ctx: other callers may depend on it.
func (c *Coordinator) EnsureLoaded(ctx context.Context, lang string) *async.Future[dictionary.Bundle] {
	return c.load(ctx, lang, false)
}

// Refresh forces a reload of lang even when it is Loaded. The cache is bypassed.
// An in-flight fetch is reused.
func (c *Coordinator) Refresh(ctx context.Context, lang string) *async.Future[dictionary.Bundle] {
	return c.load(ctx, lang, true)
}

// Fetches returns how many fetches were issued for lang, cache hits excluded.
func (c *Coordinator) Fetches(lang string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[lang]
}

type request struct {
	lang        string
	force       bool
	previous    dictionary.Bundle
	hadPrevious bool
}

func (c *Coordinator) load(ctx context.Context, lang string, force bool) *async.Future[dictionary.Bundle] {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.store.State(lang)
	switch st.Status {
	case dictionary.Pending:
		return st.Future
	case dictionary.Loaded:
		if !force {
			return async.Resolved(st.Bundle)
		}
	}

	// The lock is held until the store records Pending, so run cannot
	// write the result before the pending state exists. The previous bundle
	// comes from the Pending transition, so it includes patches applied after
	// State was read.
	req := &request{lang: lang, force: force}
	f := async.Async(context.WithoutCancel(ctx), req, c.run)
	req.previous, req.hadPrevious = c.store.MarkPending(lang, f)
	return f
}

func (c *Coordinator) run(ctx context.Context, req *request) (dictionary.Bundle, error) {
	bundle, fromCache, err := c.obtain(ctx, req)

	c.mu.Lock()
	settled := Settled{
		Language:    req.lang,
		Previous:    req.previous,
		HadPrevious: req.hadPrevious,
	}
	switch {
	case err == nil:
		c.store.Set(req.lang, bundle)
		settled.Current = bundle
	case req.hadPrevious:
		// A failed reload keeps serving the bundle it was meant to replace.
		c.store.Set(req.lang, req.previous)
		settled.Current = req.previous
	default:
		c.store.MarkFailed(req.lang, err)
	}
	c.mu.Unlock()

	settled.Err = err
	settled.FromCache = fromCache
	if c.onSettled != nil {
		c.onSettled(settled)
	}

	return bundle, err
}

func (c *Coordinator) obtain(ctx context.Context, req *request) (dictionary.Bundle, bool, error) {
	if c.cache != nil && !req.force {
		b, ok, err := c.cache.Get(ctx, req.lang)
		if err != nil {
			c.logger.WarnContext(ctx, "bundle cache read failed", logger.Language(req.lang), logger.Error(err))
		}
		if ok {
			c.logger.DebugContext(ctx, "bundle served from cache", logger.Language(req.lang), logger.Keys(b.Len()))
			return b, true, nil
		}
	}

	if c.fetcher == nil {
		return dictionary.Bundle{}, false, ErrNoFetcher
	}

	c.mu.Lock()
	c.fetches[req.lang]++
	c.mu.Unlock()

	fetchCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	b, err := c.fetcher.Fetch(fetchCtx, req.lang)
	if err != nil {
		c.logger.WarnContext(ctx, "bundle fetch failed",
			logger.Language(req.lang), logger.Duration(time.Since(start)), logger.Error(err))
		return dictionary.Bundle{}, false, errors.Join(ErrFetchFailed, err)
	}

	c.logger.DebugContext(ctx, "bundle fetched",
		logger.Language(req.lang), logger.Keys(b.Len()), logger.Duration(time.Since(start)))

	if c.cache != nil {
		if err := c.cache.Put(ctx, req.lang, b); err != nil {
			c.logger.WarnContext(ctx, "bundle cache write failed", logger.Language(req.lang), logger.Error(err))
		}
	}

	return b, false, nil
}

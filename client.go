package tolgee

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jcunliffe1/tolgee-go/pkg/broadcast"
	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/langdetect"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
	"github.com/jcunliffe1/tolgee-go/pkg/logger"
	"github.com/jcunliffe1/tolgee-go/pkg/resolver"
)

// TranslationChange reports that the resolved value of Key may differ from
// what was rendered before. Language is the bundle whose update caused it.
type TranslationChange struct {
	Key      string
	Language string
}

// Client is the entry point for bindings: it owns the active language, answers
// lookups, and notifies subscribers when either changes.
// It is safe for concurrent use. Subscriber callbacks of both event kinds run
// one at a time, never concurrently with each other.
type Client struct {
	mu              sync.RWMutex
	language        string
	fallback        string
	preloadFallback bool

	store        *dictionary.Store
	loader       *loader.Coordinator
	resolver     *resolver.Resolver
	langChanged  *broadcast.Stream[struct{}]
	transChanged *broadcast.Stream[TranslationChange]
	dispatch     broadcast.Serial
	logger       *slog.Logger
}

// New creates a client loading bundles through fetcher.
// No fetch happens until a lookup, SetLanguage or Preload needs a bundle.
func New(fetcher loader.Fetcher, opts ...Option) *Client {
	o := options{
		language:     DefaultLanguage,
		logger:       logger.Discard(),
		fetchTimeout: loader.DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.acceptLanguage != "" && len(o.available) > 0 {
		o.language = langdetect.Detect(o.acceptLanguage, o.available, o.language)
	}

	c := &Client{
		language:        o.language,
		fallback:        o.fallback,
		preloadFallback: o.preloadFallback,
		store:           dictionary.NewStore(),
		resolver:        resolver.New(),
		langChanged:     broadcast.NewStream[struct{}](),
		transChanged:    broadcast.NewStream[TranslationChange](),
		logger:          o.logger.With(logger.Component("tolgee")),
	}
	for lang, b := range o.initial {
		c.store.Set(lang, b)
	}

	loaderOpts := []loader.Option{
		loader.WithLogger(c.logger),
		loader.WithFetchTimeout(o.fetchTimeout),
		loader.WithOnSettled(c.settled),
	}
	if o.cache != nil {
		loaderOpts = append(loaderOpts, loader.WithCache(o.cache))
	}
	c.loader = loader.New(c.store, fetcher, loaderOpts...)

	return c
}

// Language returns the active language.
func (c *Client) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// FallbackLanguage returns the configured fallback language, if any.
func (c *Client) FallbackLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}

// Chain returns the active fallback chain, primary language first.
func (c *Client) Chain() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolver.Chain(c.language, c.fallback)
}

// required lists the languages IsLoaded and Preload wait for.
func (c *Client) required() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.preloadFallback {
		return resolver.Chain(c.language, c.fallback)
	}
	return resolver.Chain(c.language)
}

// Instant resolves req without blocking. See InstantResult.
func (c *Client) Instant(req resolver.Request) string {
	return c.InstantResult(req).Value
}

// InstantResult resolves req against whatever is loaded right now and starts
// loading languages of the chain that were never requested.
// While the chain is loading, OrEmpty requests resolve to the empty string and
// others to their default value or key.
func (c *Client) InstantResult(req resolver.Request) resolver.Result {
	chain := c.Chain()
	for _, lang := range chain {
		if c.store.State(lang).Status == dictionary.Unrequested {
			c.loader.EnsureLoaded(context.Background(), lang)
		}
	}
	return c.resolver.Resolve(c.store, req, chain)
}

// Translate resolves req after the bundles it depends on are loaded.
// The fallback bundle is awaited only when the key is missing from the
// primary one. Cancelling ctx abandons the wait but not the shared fetch.
func (c *Client) Translate(ctx context.Context, req resolver.Request) (string, error) {
	chain := c.Chain()

	var fetchErr error
	for _, lang := range chain {
		b, err := c.loader.EnsureLoaded(ctx, lang).AwaitContext(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			fetchErr = errors.Join(fetchErr, err)
			continue
		}
		if b.Has(req.Key) {
			break
		}
	}

	res := c.resolver.Resolve(c.store, req, chain)
	if fetchErr != nil && res.Source == resolver.SourceKey {
		return res.Value, errors.Join(ErrTranslationUnavailable, fetchErr)
	}
	return res.Value, nil
}

// SetLanguage switches the active language. Loading of the new chain starts
// without waiting, and language-change subscribers are notified once.
// Setting the current language again does nothing.
func (c *Client) SetLanguage(lang string) {
	if lang == "" {
		return
	}

	c.mu.Lock()
	if lang == c.language {
		c.mu.Unlock()
		return
	}
	prev := c.language
	c.language = lang
	chain := resolver.Chain(c.language, c.fallback)
	c.mu.Unlock()

	for _, l := range chain {
		c.loader.EnsureLoaded(context.Background(), l)
	}

	c.dispatch.Do(func() {
		n := c.langChanged.Emit(struct{}{})
		c.logger.Debug("language changed",
			slog.String("from", prev), logger.Language(lang), slog.Int("subscribers", n))
	})
}

// OnLangChange registers fn to run after every language switch.
func (c *Client) OnLangChange(fn func()) *broadcast.Subscription {
	if fn == nil {
		return c.langChanged.Subscribe(nil)
	}
	sub := c.langChanged.Subscribe(func(struct{}) { fn() })
	c.logger.Debug("language listener subscribed", logger.Subscription(sub.ID()))
	return sub
}

// OnTranslationChange registers fn to run once per key whose resolved value
// changed for the active chain.
func (c *Client) OnTranslationChange(fn func(TranslationChange)) *broadcast.Subscription {
	sub := c.transChanged.Subscribe(fn)
	if sub.Active() {
		c.logger.Debug("translation listener subscribed", logger.Subscription(sub.ID()))
	}
	return sub
}

// PatchTranslation sets key to value in the loaded bundle of lang, as an
// in-context editor would. It reports false when lang is not loaded.
// Subscribers hear about the key only if its resolved value changed.
func (c *Client) PatchTranslation(lang, key, value string) bool {
	chain := c.Chain()
	before, _, found, _ := resolver.Lookup(c.store, key, chain)

	_, ok := c.store.Update(lang, func(b dictionary.Bundle) dictionary.Bundle {
		return b.With(key, value)
	})
	if !ok {
		c.logger.Debug("patch ignored, language not loaded", logger.Language(lang), logger.Key(key))
		return false
	}

	after, _, foundAfter, _ := resolver.Lookup(c.store, key, chain)
	if found != foundAfter || before != after {
		c.dispatch.Do(func() {
			c.transChanged.Emit(TranslationChange{Key: key, Language: lang})
		})
	}
	return true
}

// Refresh reloads lang from the source, bypassing any cache, and waits for it.
// Keys whose resolved value changed are reported to subscribers.
func (c *Client) Refresh(ctx context.Context, lang string) error {
	_, err := c.loader.Refresh(ctx, lang).AwaitContext(ctx)
	return err
}

// Preload loads the active language, and with WithPreloadFallback the fallback
// too, concurrently. It returns once they settled or ctx is done.
func (c *Client) Preload(ctx context.Context) error {
	langs := c.required()
	c.logger.DebugContext(ctx, "preloading bundles", logger.Languages(langs))

	g, gctx := errgroup.WithContext(ctx)
	for _, lang := range langs {
		g.Go(func() error {
			_, err := c.loader.EnsureLoaded(gctx, lang).AwaitContext(gctx)
			return err
		})
	}
	return g.Wait()
}

// IsLoaded reports whether every language Preload waits for is loaded.
func (c *Client) IsLoaded() bool {
	for _, lang := range c.required() {
		if c.store.State(lang).Status != dictionary.Loaded {
			return false
		}
	}
	return true
}

// Fetches returns how many times lang was fetched from the source.
func (c *Client) Fetches(lang string) int {
	return c.loader.Fetches(lang)
}

// settled runs on the fetch goroutine once a bundle landed in the store.
// Its events join the dispatch queue, so two bundles settling together never
// run subscribers at the same time.
func (c *Client) settled(s loader.Settled) {
	chain := c.Chain()
	if !slices.Contains(chain, s.Language) {
		return
	}

	before := previousView{Dictionary: c.store, lang: s.Language, previous: s.Previous, had: s.HadPrevious}
	changed := changedKeys(before, c.store, candidateKeys(c.store, chain, s.Previous), chain)

	c.logger.Debug("bundle settled",
		logger.Language(s.Language), logger.Keys(len(changed)), slog.Bool("from_cache", s.FromCache))

	if len(changed) == 0 || c.transChanged.Len() == 0 {
		return
	}
	c.dispatch.Do(func() {
		for _, key := range changed {
			c.transChanged.Emit(TranslationChange{Key: key, Language: s.Language})
		}
	})
}

// previousView shows the store as it was before lang settled.
type previousView struct {
	resolver.Dictionary
	lang     string
	previous dictionary.Bundle
	had      bool
}

func (v previousView) State(lang string) dictionary.LoadState {
	if lang != v.lang {
		return v.Dictionary.State(lang)
	}
	if v.had {
		return dictionary.LoadState{Status: dictionary.Loaded, Bundle: v.previous}
	}
	return dictionary.LoadState{Status: dictionary.Pending}
}

// candidateKeys are all keys any bundle of the chain knows, old or new.
func candidateKeys(store *dictionary.Store, chain []string, previous dictionary.Bundle) []string {
	keys := previous.Keys()
	for _, lang := range chain {
		keys = append(keys, store.State(lang).Bundle.Keys()...)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

func changedKeys(before, after resolver.Dictionary, keys, chain []string) []string {
	var changed []string
	for _, key := range keys {
		bv, _, bf, _ := resolver.Lookup(before, key, chain)
		av, _, af, _ := resolver.Lookup(after, key, chain)
		if bf != af || bv != av {
			changed = append(changed, key)
		}
	}
	return changed
}

package tolgee

import (
	"log/slog"
	"slices"
	"time"

	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

type options struct {
	language        string
	fallback        string
	preloadFallback bool
	initial         map[string]dictionary.Bundle
	logger          *slog.Logger
	fetchTimeout    time.Duration
	cache           loader.Cache
	available       []string
	acceptLanguage  string
}

// Option configures a Client.
type Option func(*options)

// WithLanguage sets the initial active language.
func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.language = lang
		}
	}
}

// WithFallbackLanguage sets the language consulted when a key is missing
// from the active one.
func WithFallbackLanguage(lang string) Option {
	return func(o *options) {
		o.fallback = lang
	}
}

// WithPreloadFallback makes Preload and IsLoaded wait for the fallback
// language as well.
func WithPreloadFallback(enabled bool) Option {
	return func(o *options) {
		o.preloadFallback = enabled
	}
}

// WithInitialBundles seeds the store. Seeded languages are never fetched on
// first use; Refresh still reloads them.
func WithInitialBundles(bundles map[string]dictionary.Bundle) Option {
	return func(o *options) {
		if o.initial == nil {
			o.initial = make(map[string]dictionary.Bundle, len(bundles))
		}
		for lang, b := range bundles {
			o.initial[lang] = b
		}
	}
}

// WithLogger sets the logger for the client and its loader. Nil is ignored;
// the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFetchTimeout bounds each bundle fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

// WithCache puts a persistent bundle cache in front of the fetcher.
func WithCache(c loader.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithAvailableLanguages lists the languages the project offers.
// It is used for language detection.
func WithAvailableLanguages(langs ...string) Option {
	return func(o *options) {
		o.available = slices.Clone(langs)
	}
}

// WithDetectedLanguage picks the initial language from an Accept-Language
// value among the available languages. When nothing matches, the language
// set by WithLanguage is kept.
func WithDetectedLanguage(acceptLanguage string) Option {
	return func(o *options) {
		o.acceptLanguage = acceptLanguage
	}
}

package resolver

import (
	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
)

// Source tells where a resolved value came from.
type Source int

const (
	SourceKey Source = iota
	SourceDefault
	SourceTranslated
	SourceEmpty
)

func (s Source) String() string {
	switch s {
	case SourceKey:
		return "key"
	case SourceDefault:
		return "default"
	case SourceTranslated:
		return "translated"
	case SourceEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Request is a single lookup. An empty DefaultValue means none was provided.
type Request struct {
	Key          string
	Params       Params
	DefaultValue string
	NoWrap       bool
	OrEmpty      bool
}

// Result is the outcome of a lookup.
// Pending is set when a language of the chain was not loaded yet, so the
// value may still change once it is.
type Result struct {
	Value    string
	Source   Source
	Language string
	Key      string
	NoWrap   bool
	Pending  bool
}

// Dictionary is the read side of the bundle store.
type Dictionary interface {
	State(lang string) dictionary.LoadState
}

// Resolver turns requests into display strings using a fallback chain.
type Resolver struct {
	templates *templateCache
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTemplateCacheSize bounds the number of memoized parsed templates.
func WithTemplateCacheSize(n int) Option {
	return func(r *Resolver) {
		r.templates = newTemplateCache(n)
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{templates: newTemplateCache(DefaultTemplateCacheSize)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Chain builds a fallback chain: primary first, then the fallbacks in order,
// skipping empty codes and duplicates.
func Chain(primary string, fallbacks ...string) []string {
	chain := make([]string, 0, 1+len(fallbacks))
	seen := make(map[string]struct{}, 1+len(fallbacks))
	for _, lang := range append([]string{primary}, fallbacks...) {
		if lang == "" {
			continue
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		chain = append(chain, lang)
	}
	return chain
}

// Lookup walks chain for the raw, unformatted value of key.
// The walk stops at the first language that is not settled yet: a later language
// must never answer for an earlier one that simply has not arrived. A language
// being reloaded still answers from its previous bundle. Failed languages are
// skipped.
func Lookup(dict Dictionary, key string, chain []string) (value, lang string, found, pending bool) {
	for _, l := range chain {
		st := dict.State(l)
		switch st.Status {
		case dictionary.Loaded:
			if v, ok := st.Bundle.Get(key); ok {
				return v, l, true, false
			}
		case dictionary.Failed:
			continue
		case dictionary.Pending:
			if v, ok := st.Bundle.Get(key); ok {
				return v, l, true, false
			}
			return "", "", false, true
		default:
			return "", "", false, true
		}
	}
	return "", "", false, false
}

// Resolve looks req up along chain and formats the outcome.
// Without a translation it returns the default value, then the empty string when
// OrEmpty is set, then the key. While the chain is still loading, OrEmpty requests
// resolve to the empty string even when a default exists.
func (r *Resolver) Resolve(dict Dictionary, req Request, chain []string) Result {
	res := Result{Key: req.Key, NoWrap: req.NoWrap}

	value, lang, found, pending := Lookup(dict, req.Key, chain)
	res.Pending = pending

	switch {
	case found:
		res.Value = r.Format(value, req.Params)
		res.Source = SourceTranslated
		res.Language = lang
	case pending && req.OrEmpty:
		res.Source = SourceEmpty
	case req.DefaultValue != "":
		res.Value = r.Format(req.DefaultValue, req.Params)
		res.Source = SourceDefault
	case req.OrEmpty:
		res.Source = SourceEmpty
	default:
		res.Value = r.Format(req.Key, req.Params)
		res.Source = SourceKey
	}
	return res
}

// Format substitutes params into tmpl. Placeholders without a matching param are
// kept verbatim.
func (r *Resolver) Format(tmpl string, params Params) string {
	if tmpl == "" {
		return ""
	}
	return r.templates.get(tmpl).render(params)
}

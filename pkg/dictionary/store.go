package dictionary

import (
	"slices"
	"sync"

	"github.com/jcunliffe1/tolgee-go/pkg/async"
)

// Status is the load status of one language.
type Status int

const (
	Unrequested Status = iota
	Pending
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState describes where a language is in its load lifecycle.
// Future is set while Pending, Bundle when Loaded, Err when Failed.
// A Pending state entered from Loaded keeps the bundle being replaced.
type LoadState struct {
	Status Status
	Future *async.Future[Bundle]
	Bundle Bundle
	Err    error
}

// Settled reports whether the state is Loaded or Failed.
func (s LoadState) Settled() bool {
	return s.Status == Loaded || s.Status == Failed
}

// Store holds translation bundles keyed by language together with their load state.
// It only records transitions; it never notifies anyone.
type Store struct {
	mu     sync.RWMutex
	states map[string]LoadState
}

// NewStore creates an empty store. Every language starts Unrequested.
func NewStore() *Store {
	return &Store{states: make(map[string]LoadState)}
}

// State returns the load state of lang.
func (s *Store) State(lang string) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[lang]
}

// Bundle returns the bundle of lang if it is Loaded.
func (s *Store) Bundle(lang string) (Bundle, bool) {
	st := s.State(lang)
	if st.Status != Loaded {
		return Bundle{}, false
	}
	return st.Bundle, true
}

// Set makes lang Loaded with b, replacing any previous bundle wholesale.
func (s *Store) Set(lang string, b Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[lang] = LoadState{Status: Loaded, Bundle: b}
}

// MarkPending makes lang Pending on f. A Loaded bundle stays readable until
// the load settles; it is returned with loaded set.
func (s *Store) MarkPending(lang string, f *async.Future[Bundle]) (kept Bundle, loaded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := LoadState{Status: Pending, Future: f}
	if prev := s.states[lang]; prev.Status == Loaded {
		next.Bundle = prev.Bundle
		kept, loaded = prev.Bundle, true
	}
	s.states[lang] = next
	return kept, loaded
}

// Update replaces the Loaded bundle of lang with fn(bundle) and returns the
// bundle it replaced. It does nothing unless lang is Loaded.
func (s *Store) Update(lang string, fn func(Bundle) Bundle) (Bundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.states[lang]
	if st.Status != Loaded {
		return Bundle{}, false
	}
	s.states[lang] = LoadState{Status: Loaded, Bundle: fn(st.Bundle)}
	return st.Bundle, true
}

// MarkFailed makes lang Failed with err.
func (s *Store) MarkFailed(lang string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[lang] = LoadState{Status: Failed, Err: err}
}

// Reset forgets lang, making it Unrequested again.
func (s *Store) Reset(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, lang)
}

// Languages returns the Loaded languages in sorted order.
func (s *Store) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.states))
	for lang, st := range s.states {
		if st.Status == Loaded {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs)
	return langs
}

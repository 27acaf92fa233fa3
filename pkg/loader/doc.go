// Package loader coordinates bundle fetches for the dictionary store.
//
// Coordinator.EnsureLoaded guarantees at most one fetch in flight per language:
// concurrent callers for the same language receive the same *async.Future, while
// different languages load in parallel. Completion writes through to the store,
// reports a Settled value to the optional hook, and then resolves the future.
//
// Failed languages stay Failed until somebody asks for them again; there is no
// background retry. A failed refresh of a Loaded language keeps the previous bundle.
// A fetch runs detached from the caller's context and is bounded
// by the fetch timeout instead, so an abandoned caller never cancels a fetch other
// callers are waiting for.
//
// An optional Cache sits in front of the Fetcher. A cache hit on first load avoids the
// network entirely; successful fetches are written through. Cache errors are logged and
// otherwise ignored.
package loader

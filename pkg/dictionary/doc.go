// Package dictionary holds translation bundles and their per-language load state.
//
// A Bundle is an immutable flat map from translation key to value. Nested source
// documents are flattened with Flatten, and a single key is replaced with With,
// which returns a new Bundle.
//
// A Store tracks every language through Unrequested, Pending, Loaded and Failed.
// Set is the only writer of bundle contents. The store does not notify anybody about
// transitions; callers that mutate it are responsible for announcing changes.
package dictionary

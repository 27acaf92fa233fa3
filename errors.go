package tolgee

import "errors"

var (
	// ErrTranslationUnavailable is returned by Translate when a bundle of the
	// chain failed to load and neither a translation, a default value nor
	// OrEmpty could satisfy the request. It wraps the fetch error.
	ErrTranslationUnavailable = errors.New("tolgee: translation unavailable")

	// ErrMissingAPIURL is returned by NewFromConfig without an API URL.
	ErrMissingAPIURL = errors.New("tolgee: api url is required")
)

package loader

import "errors"

var (
	ErrFetchFailed = errors.New("loader: bundle fetch failed")
	ErrNoFetcher   = errors.New("loader: no fetcher configured")
)

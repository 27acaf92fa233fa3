package source

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL       = errors.New("source: invalid api url")
	ErrRequestFailed    = errors.New("source: request failed")
	ErrUnexpectedStatus = errors.New("source: unexpected response status")
	ErrInvalidResponse  = errors.New("source: invalid response body")
	ErrBundleNotFound   = errors.New("source: bundle not found")
	ErrUnsupportedType  = errors.New("source: unsupported file type")

	ErrFailedToParseJSON = errors.New("source: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("source: failed to parse YAML content")
	ErrParsingCancelled  = errors.New("source: parsing cancelled")
)

// StatusError is returned when the API answers with a non-2xx status.
// It matches ErrUnexpectedStatus with errors.Is.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

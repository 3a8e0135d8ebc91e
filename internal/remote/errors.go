package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthMissing means no session token is configured.
	ErrAuthMissing = errors.New("missing session token (set AOC_TOKEN)")
	ErrInvalidPart = errors.New("part must be 1 or 2")

	// ErrBodyTooLarge means a response exceeded the client's size limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// RemoteError is a failed round trip: transport error or non-200 status.
type RemoteError struct {
	URL    string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil && e.Status != 0 {
		return fmt.Sprintf("reading %s (HTTP %d): %v", e.URL, e.Status, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP %d when fetching %s", e.Status, e.URL)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ParseError means the page no longer has a shape we rely on.
type ParseError struct {
	Day    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("day %d: unexpected page shape: %s", e.Day, e.Reason)
}

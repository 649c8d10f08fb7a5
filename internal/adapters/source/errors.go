package source

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream fetches.
var (
	ErrFetch           = errors.New("fetch failed")
	ErrStatus          = errors.New("unexpected status")
	ErrDecode          = errors.New("decode response")
	ErrNoDraftID       = errors.New("draft id is required")
	ErrAllRelaysFailed = errors.New("all relays failed")
)

// FetchError names the upstream that failed. errors.Is(err, ErrFetch) holds
// for every FetchError.
type FetchError struct {
	Source string
	URL    string
	// StatusCode is zero for transport failures.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s %s: status %d: %v", e.Source, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

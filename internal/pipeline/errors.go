package pipeline

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks at the caller boundary
var (
	ErrBlockedByTarget  = errors.New("blocked by target site")
	ErrTransientNetwork = errors.New("transient network failure")
	ErrMalformedInput   = errors.New("malformed input")
	ErrFetchFailed      = errors.New("fetch failed")
)

// BlockedError means the target site denied access (401/403).
// It is never retried.
type BlockedError struct {
	URL        string
	StatusCode int // 0 when blocked by robots.txt
}

func (e *BlockedError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("blocked by target site: %s disallowed by robots.txt", e.URL)
	}
	return fmt.Sprintf("blocked by target site: %s returned %d", e.URL, e.StatusCode)
}

func (e *BlockedError) Is(target error) bool { return target == ErrBlockedByTarget }

// TransientError is a timeout, network error, 429 or 5xx that persisted
// after every retry
type TransientError struct {
	URL        string
	StatusCode int // last status seen, 0 for network errors
	Attempts   int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transient failure fetching %s: status %d after %d attempts", e.URL, e.StatusCode, e.Attempts)
	}
	return fmt.Sprintf("transient failure fetching %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool { return target == ErrTransientNetwork }

// MalformedInputError rejects a URL before any network call
type MalformedInputError struct {
	Input  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %s", e.Input, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// FetchFailedError covers page failures that are neither blocked nor
// transient: an unexpected status or an unparsable document
type FetchFailedError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

func (e *FetchFailedError) Is(target error) bool { return target == ErrFetchFailed }

package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying gateway failures. Callers match them with
// errors.Is.
var (
	// ErrRequestRejected marks non-retryable 4xx responses (bad auth,
	// missing permissions, not found). Retrying cannot help.
	ErrRequestRejected = errors.New("request rejected")

	// ErrRateLimitExceeded is returned when 403/429 responses persist past
	// the retry budget.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTransientUpstream is returned when 5xx responses or transport
	// errors persist past the retry budget.
	ErrTransientUpstream = errors.New("transient upstream error")
)

// StatusError wraps an HTTP response that ended a request, carrying the
// status code and a diagnostic tail of the body.
type StatusError struct {
	Status int
	Body   string
	Err    error
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v (status %d)", e.Err, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Err, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return e.Err }

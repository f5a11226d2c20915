package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrConfiguration indicates an unusable provider selection or a missing
// credential. It is raised before any network traffic and is never retried.
type ErrConfiguration struct {
	Provider string
	Reason   string
}

func (e *ErrConfiguration) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("invalid LLM configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid LLM configuration for %q: %s", e.Provider, e.Reason)
}

// ErrTransport indicates the backend was unreachable or answered with a
// non-success status. StatusCode is zero for network failures.
type ErrTransport struct {
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ErrTransport) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LLM provider returned status %d: %v", e.StatusCode, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// RateLimited reports whether the backend rejected the call with 429.
func (e *ErrTransport) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ErrInvalidResponse indicates the backend replied, but the reply could not
// be decoded or does not match the expected shape.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

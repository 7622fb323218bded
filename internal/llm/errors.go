package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// RateLimitError indicates the provider returned 429.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// BadResponseError indicates the model returned content that does not
// conform to the requested schema or could not be parsed.
type BadResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *BadResponseError) Unwrap() error { return e.Err }

// UnavailableError indicates the provider is down or unreachable.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError indicates the response hit the MaxTokens limit.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "model response truncated: max tokens exceeded"
}

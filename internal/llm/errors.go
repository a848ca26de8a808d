package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRateLimit means the provider answered 429.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string { return fmt.Sprintf("rate limited: %v", e.Err) }

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model replied, but not with what was asked
// for: malformed JSON, a schema mismatch or no text at all.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrTruncated is returned when a structured response hit the token limit.
// Half a JSON document is never usable, so it is not passed on.
type ErrTruncated struct {
	Content json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("LLM response truncated after %d bytes", len(e.Content))
}

// ErrBlocked is returned when the provider refused the prompt or withheld
// the answer on safety grounds. Photos of textbook pages trip this now
// and then.
type ErrBlocked struct {
	Reason string
}

func (e *ErrBlocked) Error() string {
	if e.Reason == "" {
		return "LLM response blocked"
	}
	return "LLM response blocked: " + e.Reason
}

// Transient reports whether err is worth asking again for later. Blocked,
// truncated and malformed answers will come back the same way.
func Transient(err error) bool {
	var (
		rl *ErrRateLimit
		pu *ErrProviderUnavailable
	)
	return errors.As(err, &rl) || errors.As(err, &pu)
}

package gateway

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed is matched by every gateway failure.
var ErrGenerationFailed = errors.New("AI generation failed")

// ErrEmptyBatch reports a well-formed batch with no questions. It also
// matches ErrGenerationFailed.
var ErrEmptyBatch = fmt.Errorf("%w: empty question batch", ErrGenerationFailed)

// GenerationError wraps the provider failure behind one gateway call.
// errors.Is matches ErrGenerationFailed and errors.As still reaches the
// provider's typed errors (*llm.ErrRateLimit and friends).
type GenerationError struct {
	Purpose string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Purpose, ErrGenerationFailed, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// ValidationError describes a generated question that broke the Question
// invariants. The whole batch is rejected.
type ValidationError struct {
	Index   int // position in the batch
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

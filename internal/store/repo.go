package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for a purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM requests.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// PreferenceRepo is a small persistent key/value table.
type PreferenceRepo interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// QuizAttempt is a finished quiz run.
type QuizAttempt struct {
	ID            string
	Sequence      int64
	QuizID        string
	Title         string
	Subject       string
	Chapter       string
	Paper         string
	MasterBank    bool
	Score         int
	QuestionCount int
	FinishedAt    time.Time
}

// Accuracy returns Score/QuestionCount, or 0 for an empty attempt.
func (a QuizAttempt) Accuracy() float64 {
	if a.QuestionCount == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.QuestionCount)
}

// AttemptRepo stores quiz results.
type AttemptRepo interface {
	Record(ctx context.Context, a QuizAttempt) error

	// Recent returns the newest attempts first.
	Recent(ctx context.Context, limit int) ([]QuizAttempt, error)

	// Prune deletes all but the N most recent attempts.
	Prune(ctx context.Context, keep int) error
}

package quiz

import (
	"context"
	"errors"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

// Ticket identifies one batch request. A result is only applied to the
// session that issued it, and only while its epoch is current.
type Ticket struct {
	owner   *Session
	epoch   uint64
	Request gateway.BatchRequest
}

// BatchResult is what a finished Fetch hands back to the session.
type BatchResult struct {
	Ticket    Ticket
	Questions []catalog.Question
	Err       error
}

// BeginBatch marks the batch as in flight and returns its ticket. It fails
// unless the session is Loading with nothing in flight.
func (s *Session) BeginBatch() (Ticket, bool) {
	if !s.NeedsBatch() {
		return Ticket{}, false
	}
	s.inFlight = true
	return Ticket{
		owner: s,
		epoch: s.epoch,
		Request: gateway.BatchRequest{
			Subject: s.quiz.Subject,
			Chapter: s.quiz.Chapter,
			Paper:   s.quiz.Paper,
			Size:    s.batchSize,
		},
	}, true
}

// Fetch runs the gateway call for t. It touches no session state, so it can
// run off the UI goroutine.
func Fetch(ctx context.Context, gw gateway.Gateway, t Ticket) BatchResult {
	qs, err := gw.GenerateQuizBatch(ctx, t.Request)
	return BatchResult{Ticket: t, Questions: qs, Err: err}
}

// Apply is CompleteBatch for a BatchResult.
func (s *Session) Apply(r BatchResult) bool {
	return s.CompleteBatch(r.Ticket, r.Questions, r.Err)
}

// CompleteBatch lands a batch. Stale tickets and closed sessions drop the
// result and return false. A failure or an empty batch moves to Error;
// otherwise the questions are appended and play starts at index 0.
func (s *Session) CompleteBatch(t Ticket, qs []catalog.Question, err error) bool {
	if t.owner != s || s.phase != PhaseLoading || !s.inFlight || t.epoch != s.epoch {
		s.log.Debug().
			Str("quiz_id", s.quiz.ID).
			Stringer("phase", s.phase).
			Msg("discarding stale quiz batch")
		return false
	}
	s.inFlight = false

	if err == nil && len(qs) == 0 {
		err = gateway.ErrEmptyBatch
	}
	if err != nil {
		s.phase = PhaseError
		s.err = err
		s.log.Warn().Err(err).
			Str("quiz_id", s.quiz.ID).
			Bool("empty", errors.Is(err, gateway.ErrEmptyBatch)).
			Msg("quiz batch failed")
		return true
	}

	for _, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		s.questions = append(s.questions, q)
	}
	s.index = 0
	s.score = 0
	s.selected = -1
	s.phase = PhaseActive
	s.log.Debug().
		Str("quiz_id", s.quiz.ID).
		Int("questions", len(s.questions)).
		Msg("quiz batch applied")
	return true
}

// Package quiz runs one multiple-choice quiz: Master Bank batch loading,
// answering, scoring and restart.
package quiz

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

// ErrNoQuestions is the session error for an authored quiz with no questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// LoadFailedMessage is shown on the error screen.
const LoadFailedMessage = "AI মডিউল প্রশ্ন লোড করতে ব্যর্থ হয়েছে। ইন্টারনেট সংযোগ চেক করো।"

// Session is the state machine for one quiz attempt. It is not safe for
// concurrent use; drive it from a single goroutine and run gateway calls
// through Fetch.
type Session struct {
	quiz      catalog.Quiz
	questions []catalog.Question

	phase    Phase
	index    int
	score    int
	selected int
	err      error

	epoch     uint64
	inFlight  bool
	batchSize int

	log zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithBatchSize sets how many questions a Master Bank batch asks for.
func WithBatchSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithLogger attaches a logger for state transitions.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New starts a session over a copy of q's questions. An empty Master Bank
// quiz starts Loading and needs a batch; anything else with questions
// starts Active.
func New(q catalog.Quiz, opts ...Option) *Session {
	q = q.Clone()
	s := &Session{
		quiz:      q,
		questions: q.Questions,
		selected:  -1,
		batchSize: gateway.DefaultBatchSize,
		log:       zerolog.Nop(),
	}
	s.quiz.Questions = nil
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case len(s.questions) > 0:
		s.phase = PhaseActive
	case q.MasterBank:
		s.phase = PhaseLoading
	default:
		s.phase = PhaseError
		s.err = ErrNoQuestions
	}

	s.log.Debug().
		Str("quiz_id", q.ID).
		Bool("master_bank", q.MasterBank).
		Int("questions", len(s.questions)).
		Stringer("phase", s.phase).
		Msg("quiz session started")
	return s
}

// Quiz returns the quiz metadata. Questions are left empty.
func (s *Session) Quiz() catalog.Quiz { return s.quiz }

// Phase returns where the session is in its lifecycle.
func (s *Session) Phase() Phase { return s.phase }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Score counts correct answers so far.
func (s *Session) Score() int { return s.score }

// Err holds the last load failure while in PhaseError.
func (s *Session) Err() error { return s.err }

// QuestionCount is the number of questions loaded.
func (s *Session) QuestionCount() int { return len(s.questions) }

// Answered reports whether the current question has a selection.
func (s *Session) Answered() bool { return s.phase == PhaseAnswered }

// Selected returns the chosen option of the current question.
func (s *Session) Selected() (int, bool) {
	if s.phase != PhaseAnswered {
		return 0, false
	}
	return s.selected, true
}

// Current returns the question being shown in Active or Answered.
func (s *Session) Current() (catalog.Question, bool) {
	if s.phase != PhaseActive && s.phase != PhaseAnswered {
		return catalog.Question{}, false
	}
	return s.questions[s.index], true
}

// NeedsBatch reports whether the session is waiting for a batch that has not
// been requested yet.
func (s *Session) NeedsBatch() bool {
	return s.phase == PhaseLoading && !s.inFlight
}

// SelectOption answers the current question. Only valid in Active with an
// index inside the options; the score moves at most once per question.
func (s *Session) SelectOption(i int) bool {
	if s.phase != PhaseActive {
		return false
	}
	q := s.questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return false
	}
	s.selected = i
	s.phase = PhaseAnswered
	if i == q.CorrectAnswer {
		s.score++
	}
	return true
}

// Advance moves past an answered question, to the next one or to Result.
func (s *Session) Advance() bool {
	if s.phase != PhaseAnswered {
		return false
	}
	s.selected = -1
	if s.index+1 < len(s.questions) {
		s.index++
		s.phase = PhaseActive
		return true
	}
	s.phase = PhaseResult
	s.log.Debug().
		Str("quiz_id", s.quiz.ID).
		Int("score", s.score).
		Int("questions", len(s.questions)).
		Msg("quiz finished")
	return true
}

// Restart replays the same questions from the start. Only valid in Result.
func (s *Session) Restart() bool {
	if s.phase != PhaseResult {
		return false
	}
	s.index = 0
	s.score = 0
	s.selected = -1
	s.phase = PhaseActive
	return true
}

// Close ends the session from any state. Any batch still in flight will be
// discarded when it lands.
func (s *Session) Close() {
	if s.phase == PhaseClosed {
		return
	}
	s.epoch++
	s.inFlight = false
	s.phase = PhaseClosed
}

// Accuracy is score over questions seen while playing, and score over the
// whole sequence in Result. Other phases report 0.
func (s *Session) Accuracy() float64 {
	switch s.phase {
	case PhaseActive, PhaseAnswered:
		return float64(s.score) / float64(s.index+1)
	case PhaseResult:
		return float64(s.score) / float64(len(s.questions))
	}
	return 0
}

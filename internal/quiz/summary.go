package quiz

import (
	"github.com/zoomerslab/hsclab/internal/store"
)

// Summary is the outcome of a finished session.
type Summary struct {
	QuizID        string
	Title         string
	Score         int
	QuestionCount int
	Accuracy      float64
	Grade         string
	MasterBank    bool
}

// Summary reports the result once the session reaches Result.
func (s *Session) Summary() (Summary, bool) {
	if s.phase != PhaseResult {
		return Summary{}, false
	}
	acc := s.Accuracy()
	return Summary{
		QuizID:        s.quiz.ID,
		Title:         s.quiz.Title,
		Score:         s.score,
		QuestionCount: len(s.questions),
		Accuracy:      acc,
		Grade:         Grade(acc),
		MasterBank:    s.quiz.MasterBank,
	}, true
}

// Attempt converts a finished session into a history row.
func (s *Session) Attempt() (store.QuizAttempt, bool) {
	sum, ok := s.Summary()
	if !ok {
		return store.QuizAttempt{}, false
	}
	return store.QuizAttempt{
		QuizID:        sum.QuizID,
		Title:         sum.Title,
		Subject:       string(s.quiz.Subject),
		Chapter:       s.quiz.Chapter,
		Paper:         string(s.quiz.Paper),
		MasterBank:    sum.MasterBank,
		Score:         sum.Score,
		QuestionCount: sum.QuestionCount,
	}, true
}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

func question(id string, correct int) catalog.Question {
	return catalog.Question{
		ID:            id,
		Text:          "প্রশ্ন " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
	}
}

func authoredQuiz(qs ...catalog.Question) catalog.Quiz {
	return catalog.Quiz{
		ID:        "q-phy-1",
		Title:     "Vector Basics",
		Subject:   catalog.SubjectPhysics,
		Chapter:   "Vector",
		Paper:     catalog.PaperFirst,
		Questions: qs,
	}
}

func masterBank() catalog.Quiz {
	return catalog.Quiz{
		ID:         "master-Physics-Vector-1st",
		Title:      "Vector - 200+ MCQ Master Bank",
		Subject:    catalog.SubjectPhysics,
		Chapter:    "Vector",
		Paper:      catalog.PaperFirst,
		MasterBank: true,
	}
}

func batch(n int) []catalog.Question {
	out := make([]catalog.Question, n)
	for i := range out {
		out[i] = question(fmt.Sprintf("ai-x-%d", i), i%4)
	}
	return out
}

// fakeGateway returns a fixed batch.
type fakeGateway struct {
	questions []catalog.Question
	err       error
	got       []gateway.BatchRequest
}

func (f *fakeGateway) GenerateFormulaSheet(context.Context, gateway.FormulaRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeGateway) GenerateQuizBatch(_ context.Context, req gateway.BatchRequest) ([]catalog.Question, error) {
	f.got = append(f.got, req)
	return f.questions, f.err
}

func (f *fakeGateway) AnswerTutorQuery(context.Context, gateway.TutorRequest) (string, error) {
	return "", errors.New("not used")
}

func TestSingleQuestionQuiz(t *testing.T) {
	s := New(authoredQuiz(question("q1", 2)))
	require.Equal(t, PhaseActive, s.Phase())
	assert.False(t, s.NeedsBatch())

	require.True(t, s.SelectOption(2))
	assert.Equal(t, 1, s.Score())
	assert.True(t, s.Answered())

	require.True(t, s.Advance())
	assert.Equal(t, PhaseResult, s.Phase())
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 1, s.QuestionCount())
	assert.Equal(t, 1.0, s.Accuracy())
}

func TestSelectOptionScoresOnce(t *testing.T) {
	s := New(authoredQuiz(question("q1", 1), question("q2", 0)))

	require.True(t, s.SelectOption(1))
	assert.False(t, s.SelectOption(0))
	assert.False(t, s.SelectOption(1))
	assert.Equal(t, 1, s.Score())

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)
}

func TestSelectOptionOutOfRange(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0)))

	assert.False(t, s.SelectOption(-1))
	assert.False(t, s.SelectOption(4))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 0, s.Score())
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0), question("q2", 0)))

	assert.False(t, s.Advance())
	assert.Equal(t, 0, s.Index())

	s.SelectOption(3)
	require.True(t, s.Advance())
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, PhaseActive, s.Phase())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestAccuracyWhilePlaying(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0), question("q2", 0), question("q3", 0), question("q4", 0)))

	s.SelectOption(0)
	assert.Equal(t, 1.0, s.Accuracy())
	s.Advance()
	assert.Equal(t, 0.5, s.Accuracy())
	s.SelectOption(1)
	assert.Equal(t, 0.5, s.Accuracy())
	s.Advance()
	s.SelectOption(0)
	s.Advance()
	s.SelectOption(2)
	s.Advance()

	require.Equal(t, PhaseResult, s.Phase())
	assert.Equal(t, 2, s.Score())
	assert.Equal(t, 0.5, s.Accuracy())
}

func TestRestartKeepsQuestions(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0), question("q2", 1)))
	assert.False(t, s.Restart())

	s.SelectOption(0)
	s.Advance()
	s.SelectOption(1)
	s.Advance()
	require.Equal(t, PhaseResult, s.Phase())

	require.True(t, s.Restart())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 2, s.QuestionCount())
	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "q1", q.ID)
}

func TestSessionCopiesQuestions(t *testing.T) {
	src := authoredQuiz(question("q1", 0))
	s := New(src)
	src.Questions[0].Options[0] = "changed"

	q, _ := s.Current()
	assert.Equal(t, "a", q.Options[0])
}

func TestEmptyAuthoredQuizIsError(t *testing.T) {
	s := New(authoredQuiz())
	assert.Equal(t, PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), ErrNoQuestions)
	assert.False(t, s.NeedsBatch())
}

func TestMasterBankEmptyBatch(t *testing.T) {
	s := New(masterBank())
	require.Equal(t, PhaseLoading, s.Phase())
	require.True(t, s.NeedsBatch())

	ticket, ok := s.BeginBatch()
	require.True(t, ok)
	assert.False(t, s.NeedsBatch())

	require.True(t, s.CompleteBatch(ticket, nil, nil))
	assert.Equal(t, PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), gateway.ErrEmptyBatch)
	assert.Equal(t, 0, s.QuestionCount())
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestMasterBankTenQuestions(t *testing.T) {
	gw := &fakeGateway{questions: batch(10)}
	s := New(masterBank())

	ticket, ok := s.BeginBatch()
	require.True(t, ok)
	res := Fetch(context.Background(), gw, ticket)
	require.True(t, s.Apply(res))

	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 10, s.QuestionCount())
	assert.Equal(t, 0, s.Score())

	require.Len(t, gw.got, 1)
	assert.Equal(t, gateway.BatchRequest{
		Subject: catalog.SubjectPhysics,
		Chapter: "Vector",
		Paper:   catalog.PaperFirst,
		Size:    gateway.DefaultBatchSize,
	}, gw.got[0])
}

func TestMasterBankFailure(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("%w: boom", gateway.ErrGenerationFailed)}
	s := New(masterBank(), WithBatchSize(5))

	ticket, _ := s.BeginBatch()
	assert.Equal(t, 5, ticket.Request.Size)
	s.Apply(Fetch(context.Background(), gw, ticket))

	assert.Equal(t, PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), gateway.ErrGenerationFailed)
	assert.False(t, s.NeedsBatch())
	_, ok := s.BeginBatch()
	assert.False(t, ok)
}

func TestBeginBatchOnlyOnce(t *testing.T) {
	s := New(masterBank())

	_, ok := s.BeginBatch()
	require.True(t, ok)
	_, ok = s.BeginBatch()
	assert.False(t, ok)

	authored := New(authoredQuiz(question("q1", 0)))
	_, ok = authored.BeginBatch()
	assert.False(t, ok)
}

func TestCloseDropsInFlightBatch(t *testing.T) {
	s := New(masterBank())
	ticket, _ := s.BeginBatch()

	s.Close()
	assert.Equal(t, PhaseClosed, s.Phase())
	assert.False(t, s.CompleteBatch(ticket, batch(10), nil))
	assert.Equal(t, PhaseClosed, s.Phase())
	assert.Equal(t, 0, s.QuestionCount())
}

func TestStaleTicketDropped(t *testing.T) {
	s := New(masterBank())
	ticket, _ := s.BeginBatch()

	require.True(t, s.CompleteBatch(ticket, batch(2), nil))
	assert.False(t, s.CompleteBatch(ticket, batch(3), nil))
	assert.Equal(t, 2, s.QuestionCount())
}

func TestInvalidOperationsAfterClose(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0)))
	s.Close()

	assert.False(t, s.SelectOption(0))
	assert.False(t, s.Advance())
	assert.False(t, s.Restart())
	assert.Equal(t, 0.0, s.Accuracy())
	s.Close()
	assert.Equal(t, PhaseClosed, s.Phase())
}

func TestSummaryAndAttempt(t *testing.T) {
	s := New(authoredQuiz(question("q1", 0), question("q2", 0), question("q3", 0), question("q4", 0), question("q5", 0)))
	_, ok := s.Summary()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		if i == 4 {
			s.SelectOption(1)
		} else {
			s.SelectOption(0)
		}
		s.Advance()
	}

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, 4, sum.Score)
	assert.Equal(t, 5, sum.QuestionCount)
	assert.InDelta(t, 0.8, sum.Accuracy, 1e-9)
	assert.Equal(t, "EXCELLENT", sum.Grade)

	a, ok := s.Attempt()
	require.True(t, ok)
	assert.Equal(t, "q-phy-1", a.QuizID)
	assert.Equal(t, "Physics", a.Subject)
	assert.Equal(t, "1st", a.Paper)
	assert.Equal(t, 4, a.Score)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		acc  float64
		want string
	}{
		{1.0, "EXCELLENT"},
		{0.8, "EXCELLENT"},
		{0.79, "ELITE"},
		{0, "ELITE"},
	}
	for _, tt := range tests {
		if got := Grade(tt.acc); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.acc, got, tt.want)
		}
	}
}

func TestTicketFromAnotherSessionDropped(t *testing.T) {
	first := New(masterBank())
	second := New(masterBank())
	ticket, _ := first.BeginBatch()
	_, ok := second.BeginBatch()
	require.True(t, ok)

	assert.False(t, second.CompleteBatch(ticket, batch(4), nil))
	assert.Equal(t, PhaseLoading, second.Phase())
}

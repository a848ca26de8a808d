package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
	qz "github.com/zoomerslab/hsclab/internal/quiz"
	"github.com/zoomerslab/hsclab/internal/router"
	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/store"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
)

// errOffline fails a Master Bank load when no provider is configured.
var errOffline = errors.New("no LLM provider configured")

// Deps are the collaborators a quiz screen needs. Gateway and Attempts may
// be nil.
type Deps struct {
	Gateway     gateway.Gateway
	Attempts    store.AttemptRepo
	HistorySize int
	BatchSize   int
	Log         zerolog.Logger
}

// QuizScreen plays one quiz session.
type QuizScreen struct {
	deps    Deps
	session *qz.Session
	choice  components.MultiChoice

	// resultButton is 0 for Restart and 1 for Close.
	resultButton int
	saveErr      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen for q.
func New(q catalog.Quiz, deps Deps) *QuizScreen {
	s := &QuizScreen{
		deps: deps,
		session: qz.New(q,
			qz.WithBatchSize(deps.BatchSize),
			qz.WithLogger(deps.Log),
		),
	}
	s.resetChoice()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.requestBatch()
}

func (s *QuizScreen) Title() string {
	return s.session.Quiz().Title
}

// Close drops any batch still in flight.
func (s *QuizScreen) Close() {
	s.session.Close()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case qz.PhaseActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Close"},
		}
	case qz.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Close"},
		}
	case qz.PhaseResult:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "R", Description: "Restart"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Close"},
		}
	}
}

// requestBatch starts the Master Bank fetch when the session needs one.
func (s *QuizScreen) requestBatch() tea.Cmd {
	ticket, ok := s.session.BeginBatch()
	if !ok {
		return nil
	}
	if s.deps.Gateway == nil {
		s.session.CompleteBatch(ticket, nil, errOffline)
		return nil
	}
	gw := s.deps.Gateway
	return func() tea.Msg {
		return batchLoadedMsg{Result: qz.Fetch(context.Background(), gw, ticket)}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if s.session.Apply(msg.Result) {
			s.resetChoice()
		}
		return s, nil

	case attemptSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		}
		return s, nil

	case components.ChoiceMsg:
		return s.handleChoice(msg.Index)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleChoice(i int) (screen.Screen, tea.Cmd) {
	q, ok := s.session.Current()
	if !ok || !s.session.SelectOption(i) {
		return s, nil
	}
	s.choice.Reveal(i, q.CorrectAnswer)
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.session.Phase() {
	case qz.PhaseActive:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case qz.PhaseAnswered:
		switch msg.String() {
		case "enter", "space", "right", "n":
			s.session.Advance()
			if s.session.Phase() == qz.PhaseResult {
				s.resultButton = 0
				return s, s.saveAttempt()
			}
			s.resetChoice()
		}
		return s, nil

	case qz.PhaseResult:
		switch msg.String() {
		case "left", "h":
			s.resultButton = 0
		case "right", "l":
			s.resultButton = 1
		case "r":
			return s.restart()
		case "enter":
			if s.resultButton == 0 {
				return s.restart()
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case qz.PhaseError:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *QuizScreen) restart() (screen.Screen, tea.Cmd) {
	if s.session.Restart() {
		s.saveErr = ""
		s.resetChoice()
	}
	return s, nil
}

func (s *QuizScreen) resetChoice() {
	q, ok := s.session.Current()
	if !ok {
		s.choice = components.NewMultiChoice(nil)
		return
	}
	s.choice = components.NewMultiChoice(q.Options)
}

// saveAttempt records the finished run and trims old history.
func (s *QuizScreen) saveAttempt() tea.Cmd {
	repo := s.deps.Attempts
	attempt, ok := s.session.Attempt()
	if repo == nil || !ok {
		return nil
	}
	keep := s.deps.HistorySize
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.Record(ctx, attempt); err != nil {
			return attemptSavedMsg{Err: err}
		}
		if keep > 0 {
			if err := repo.Prune(ctx, keep); err != nil {
				return attemptSavedMsg{Err: err}
			}
		}
		return attemptSavedMsg{}
	}
}

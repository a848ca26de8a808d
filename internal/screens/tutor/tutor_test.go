package tutor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
	tt "github.com/zoomerslab/hsclab/internal/tutor"
)

type stubGateway struct {
	answer string
	err    error
	last   gateway.TutorRequest
}

func (g *stubGateway) GenerateFormulaSheet(context.Context, gateway.FormulaRequest) (string, error) {
	return "", errors.New("unused")
}

func (g *stubGateway) GenerateQuizBatch(context.Context, gateway.BatchRequest) ([]catalog.Question, error) {
	return nil, errors.New("unused")
}

func (g *stubGateway) AnswerTutorQuery(_ context.Context, req gateway.TutorRequest) (string, error) {
	g.last = req
	return g.answer, g.err
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func typeText(s *TutorScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func newScreen(gw gateway.Gateway) *TutorScreen {
	s := New(Deps{Gateway: gw, MaxImageBytes: 1 << 20, Log: zerolog.Nop()})
	s.Init()
	return s
}

func TestAskAndAnswer(t *testing.T) {
	gw := &stubGateway{answer: "Use v = u + at"}
	s := newScreen(gw)

	typeText(s, "velocity?")
	assert.Equal(t, "velocity?", s.session.Query())

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, s.session.Loading())

	s.Update(cmd())
	assert.Equal(t, "velocity?", gw.last.Prompt)
	assert.Equal(t, "Use v = u + at", s.session.Response())
	assert.Empty(t, s.query.Value())
	assert.Contains(t, s.View(100, 30), "v = u + at")
}

func TestBlankAskIsNoop(t *testing.T) {
	s := newScreen(&stubGateway{})

	_, cmd := s.Update(enter())
	assert.Nil(t, cmd)
	assert.False(t, s.session.Loading())
}

func TestFailureKeepsQuery(t *testing.T) {
	s := newScreen(&stubGateway{err: gateway.ErrGenerationFailed})

	typeText(s, "why")
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.True(t, s.session.Failed())
	assert.Equal(t, "why", s.query.Value())
	assert.Contains(t, s.View(100, 30), tt.FailureMessage)
}

func TestAttachImageAndAsk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	gw := &stubGateway{answer: "ok"}
	s := newScreen(gw)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.path.SetValue(path)
	s.Update(enter())

	img, ok := s.session.Image()
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Empty(t, s.imageErr)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.NotNil(t, gw.last.Image)
	assert.Equal(t, pngHeader, gw.last.Image.Data)
	_, ok = s.session.Image()
	assert.False(t, ok)
}

func TestRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	s := newScreen(&stubGateway{})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.path.SetValue(path)
	s.Update(enter())

	_, ok := s.session.Image()
	assert.False(t, ok)
	assert.NotEmpty(t, s.imageErr)
}

func TestRemoveImage(t *testing.T) {
	s := newScreen(&stubGateway{})
	s.session.AttachImage(tt.Attachment{Name: "a.png", MIMEType: "image/png", Data: pngHeader})

	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})

	_, ok := s.session.Image()
	assert.False(t, ok)
}

func TestCloseDropsAnswer(t *testing.T) {
	s := newScreen(&stubGateway{answer: "late"})

	typeText(s, "q")
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	msg := cmd()

	s.Close()
	s.Update(msg)
	assert.Empty(t, s.session.Response())
}

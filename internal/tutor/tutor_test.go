package tutor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

type fakeGateway struct {
	answer string
	err    error
	got    []gateway.TutorRequest
}

func (f *fakeGateway) GenerateFormulaSheet(context.Context, gateway.FormulaRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeGateway) GenerateQuizBatch(context.Context, gateway.BatchRequest) ([]catalog.Question, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) AnswerTutorQuery(_ context.Context, req gateway.TutorRequest) (string, error) {
	f.got = append(f.got, req)
	return f.answer, f.err
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestAskBlankIsNoop(t *testing.T) {
	s := New(zerolog.Nop())
	s.SetQuery("   ")

	_, ok := s.Ask()
	assert.False(t, ok)
	assert.False(t, s.Loading())
}

func TestAskAndComplete(t *testing.T) {
	gw := &fakeGateway{answer: "ভেক্টর রাশির মান ও দিক আছে।"}
	s := New(zerolog.Nop())
	s.SetQuery("ভেক্টর কী?")

	ticket, ok := s.Ask()
	require.True(t, ok)
	assert.True(t, s.Loading())

	_, again := s.Ask()
	assert.False(t, again, "second ask while loading")

	require.True(t, s.Apply(Fetch(context.Background(), gw, ticket)))
	assert.False(t, s.Loading())
	assert.False(t, s.Failed())
	assert.Equal(t, "ভেক্টর রাশির মান ও দিক আছে।", s.Response())
	assert.Empty(t, s.Query())
	require.Len(t, gw.got, 1)
	assert.Equal(t, "ভেক্টর কী?", gw.got[0].Prompt)
	assert.Nil(t, gw.got[0].Image)
}

func TestImageOnlyAsk(t *testing.T) {
	gw := &fakeGateway{answer: "ok"}
	s := New(zerolog.Nop())
	s.AttachImage(Attachment{Name: "a.png", MIMEType: "image/png", Data: pngHeader})

	ticket, ok := s.Ask()
	require.True(t, ok)
	require.NotNil(t, ticket.Request.Image)
	assert.Equal(t, "image/png", ticket.Request.Image.MIMEType)

	s.Apply(Fetch(context.Background(), gw, ticket))
	_, staged := s.Image()
	assert.False(t, staged, "image cleared on success")
}

func TestFailureKeepsInput(t *testing.T) {
	gw := &fakeGateway{err: gateway.ErrGenerationFailed}
	s := New(zerolog.Nop())
	s.SetQuery("hello")
	s.AttachImage(Attachment{Name: "a.png", MIMEType: "image/png", Data: pngHeader})

	ticket, _ := s.Ask()
	require.True(t, s.Apply(Fetch(context.Background(), gw, ticket)))

	assert.True(t, s.Failed())
	assert.Equal(t, FailureMessage, s.Response())
	assert.Equal(t, "hello", s.Query())
	_, staged := s.Image()
	assert.True(t, staged)

	_, ok := s.Ask()
	assert.True(t, ok, "resubmission allowed after failure")
}

func TestAttachReplacesAndRemove(t *testing.T) {
	s := New(zerolog.Nop())
	s.AttachImage(Attachment{Name: "one.png"})
	s.AttachImage(Attachment{Name: "two.png"})

	img, ok := s.Image()
	require.True(t, ok)
	assert.Equal(t, "two.png", img.Name)

	s.RemoveImage()
	_, ok = s.Image()
	assert.False(t, ok)
}

func TestCloseDropsAnswer(t *testing.T) {
	s := New(zerolog.Nop())
	s.SetQuery("q")
	ticket, _ := s.Ask()

	s.Close()
	assert.False(t, s.Complete(ticket, "late", nil))
	assert.Empty(t, s.Response())

	_, ok := s.Ask()
	assert.False(t, ok)
}

func TestStaleTicketDropped(t *testing.T) {
	s := New(zerolog.Nop())
	s.SetQuery("first")
	first, _ := s.Ask()
	require.True(t, s.Complete(first, "one", nil))

	s.SetQuery("second")
	_, ok := s.Ask()
	require.True(t, ok)
	assert.False(t, s.Complete(first, "stale", nil))
	assert.Equal(t, "one", s.Response())
	assert.True(t, s.Loading())
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	img, err := LoadImage(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "board.png", img.Name)
	assert.Equal(t, pngHeader, img.Data)
}

func TestLoadImageRejects(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("just some notes"), 0o644))
	big := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(big, append(pngHeader, make([]byte, 64)...), 0o644))

	_, err := LoadImage(text, 0)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = LoadImage(big, 32)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = LoadImage(filepath.Join(dir, "missing.png"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadImage(dir, 0)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestTicketFromAnotherDialogDropped(t *testing.T) {
	a := New(zerolog.Nop())
	b := New(zerolog.Nop())
	a.SetQuery("a")
	b.SetQuery("b")
	ticket, _ := a.Ask()
	_, ok := b.Ask()
	require.True(t, ok)

	assert.False(t, b.Complete(ticket, "for a", nil))
	assert.True(t, b.Loading())
}

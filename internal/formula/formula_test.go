package formula

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

type fakeGateway struct {
	text string
	err  error
	got  []gateway.FormulaRequest
}

func (f *fakeGateway) GenerateFormulaSheet(_ context.Context, req gateway.FormulaRequest) (string, error) {
	f.got = append(f.got, req)
	return f.text, f.err
}

func (f *fakeGateway) GenerateQuizBatch(context.Context, gateway.BatchRequest) ([]catalog.Question, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) AnswerTutorQuery(context.Context, gateway.TutorRequest) (string, error) {
	return "", errors.New("not used")
}

func vectorSheet(content string) catalog.Resource {
	return catalog.Document{ResourceInfo: catalog.ResourceInfo{
		ID:          "phy-vec",
		Title:       "Vector All Formulas",
		Content:     content,
		Category:    catalog.SubjectPhysics,
		SubCategory: catalog.SubCategoryFormula,
		Chapter:     "Vector",
		Paper:       catalog.PaperFirst,
	}}
}

func TestStoredContentIsReady(t *testing.T) {
	s := Open(vectorSheet("A·B = AB cosθ"))
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, "A·B = AB cosθ", s.Text())

	_, ok := s.Begin()
	assert.False(t, ok)
}

func TestGenerate(t *testing.T) {
	gw := &fakeGateway{text: "generated"}
	s := Open(vectorSheet(""))
	require.Equal(t, StatusPending, s.Status())

	ticket, ok := s.Begin()
	require.True(t, ok)
	assert.Equal(t, StatusLoading, s.Status())
	_, again := s.Begin()
	assert.False(t, again)

	require.True(t, s.Apply(Fetch(context.Background(), gw, ticket)))
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, "generated", s.Text())
	assert.Equal(t, gateway.FormulaRequest{
		Subject: catalog.SubjectPhysics,
		Chapter: "Vector",
		Paper:   catalog.PaperFirst,
	}, gw.got[0])
}

func TestFailureAndRetry(t *testing.T) {
	gw := &fakeGateway{err: gateway.ErrGenerationFailed}
	s := Open(vectorSheet(""))
	assert.False(t, s.Retry())

	ticket, _ := s.Begin()
	s.Apply(Fetch(context.Background(), gw, ticket))
	assert.Equal(t, StatusFailed, s.Status())
	assert.Equal(t, FailureMessage, s.Text())
	assert.ErrorIs(t, s.Err(), gateway.ErrGenerationFailed)

	require.True(t, s.Retry())
	assert.Equal(t, StatusPending, s.Status())
	gw.err = nil
	gw.text = "second try"
	ticket, ok := s.Begin()
	require.True(t, ok)
	s.Apply(Fetch(context.Background(), gw, ticket))
	assert.Equal(t, "second try", s.Text())
}

func TestCloseDropsLateResult(t *testing.T) {
	s := Open(vectorSheet(""))
	ticket, _ := s.Begin()
	s.Close()

	assert.False(t, s.Complete(ticket, "late", nil))
	assert.Equal(t, StatusClosed, s.Status())
	assert.Empty(t, s.Text())
}

func TestChapterFallsBackToTitle(t *testing.T) {
	r := catalog.Document{ResourceInfo: catalog.ResourceInfo{
		Title:    "Organic Reactions",
		Category: catalog.SubjectChemistry,
	}}
	ticket, ok := Open(r).Begin()
	require.True(t, ok)
	assert.Equal(t, "Organic Reactions", ticket.Request.Chapter)
}

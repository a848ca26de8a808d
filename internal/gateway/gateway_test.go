package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/llm"
)

func newTestClient(mock *llm.MockProvider) *Client {
	c := New(mock, DefaultConfig(), zerolog.Nop())
	c.newID = func() string { return "fixed" }
	return c
}

func batchJSON(n int) json.RawMessage {
	qs := make([]string, n)
	for i := range qs {
		qs[i] = `{"text":"নিউটনের দ্বিতীয় সূত্র কোনটি?","options":["F=ma","E=mc^2","V=IR","P=VI"],"correctAnswer":0,"explanation":"বল = ভর x ত্বরণ"}`
	}
	return json.RawMessage(`{"questions":[` + strings.Join(qs, ",") + `]}`)
}

func physicsBatch() BatchRequest {
	return BatchRequest{
		Subject: catalog.SubjectPhysics,
		Chapter: "Dynamics",
		Paper:   catalog.PaperFirst,
	}
}

func TestGenerateQuizBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(10)})
	c := newTestClient(mock)

	qs, err := c.GenerateQuizBatch(context.Background(), physicsBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("got %d questions, want 10", len(qs))
	}
	if qs[0].ID != "ai-fixed-0" || qs[9].ID != "ai-fixed-9" {
		t.Errorf("ids = %q..%q", qs[0].ID, qs[9].ID)
	}
	if qs[3].Options[qs[3].CorrectAnswer] != "F=ma" {
		t.Errorf("correct option = %q", qs[3].Options[qs[3].CorrectAnswer])
	}

	want := llm.Label{Purpose: PurposeBatch, Topic: "Physics 1st / Dynamics"}
	if mock.Labels[0] != want {
		t.Errorf("label = %+v, want %+v", mock.Labels[0], want)
	}
	req := mock.Calls[0]
	if req.Schema != BatchSchema {
		t.Error("expected the batch schema on the request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Generate 10 Bangla", "Subject: Physics", "Paper: 1st", "Chapter: Dynamics"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerateQuizBatchCustomSize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(3)})
	c := newTestClient(mock)

	req := physicsBatch()
	req.Size = 3
	req.Subject = catalog.SubjectICT
	req.Paper = catalog.PaperNone
	qs, err := c.GenerateQuizBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("got %d questions, want 3", len(qs))
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Generate 3 Bangla") || !strings.Contains(msg, "Paper: N/A") {
		t.Errorf("unexpected prompt:\n%s", msg)
	}
}

func TestGenerateQuizBatchEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	c := newTestClient(mock)

	_, err := c.GenerateQuizBatch(context.Background(), physicsBatch())
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("err = %v, want ErrEmptyBatch", err)
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Error("empty batch should also match ErrGenerationFailed")
	}
}

func TestGenerateQuizBatchRejectsInvalidEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"three options", `{"text":"q","options":["a","b","c"],"correctAnswer":0,"explanation":""}`},
		{"answer out of range", `{"text":"q","options":["a","b","c","d"],"correctAnswer":4,"explanation":""}`},
		{"negative answer", `{"text":"q","options":["a","b","c","d"],"correctAnswer":-1,"explanation":""}`},
		{"blank option", `{"text":"q","options":["a","","c","d"],"correctAnswer":1,"explanation":""}`},
		{"blank text", `{"text":"  ","options":["a","b","c","d"],"correctAnswer":1,"explanation":""}`},
		{"missing answer", `{"text":"q","options":["a","b","c","d"],"explanation":"e"}`},
		{"missing explanation", `{"text":"q","options":["a","b","c","d"],"correctAnswer":1}`},
		{"missing text", `{"options":["a","b","c","d"],"correctAnswer":1,"explanation":"e"}`},
		{"missing options", `{"text":"q","correctAnswer":1,"explanation":"e"}`},
		{"unknown field", `{"text":"q","options":["a","b","c","d"],"correctAnswer":1,"explanation":"e","bogus":true}`},
		{"null entry", `null`},
		{"answer as string", `{"text":"q","options":["a","b","c","d"],"correctAnswer":"1","explanation":"e"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := `{"text":"ok","options":["a","b","c","d"],"correctAnswer":2,"explanation":"e"}`
			body := json.RawMessage(`{"questions":[` + good + `,` + tt.entry + `]}`)
			c := newTestClient(llm.NewMockProvider(llm.MockResponse{Content: body}))

			qs, err := c.GenerateQuizBatch(context.Background(), physicsBatch())
			if qs != nil {
				t.Errorf("expected no questions, got %d", len(qs))
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Index != 1 {
				t.Errorf("index = %d, want 1", ve.Index)
			}
			if !errors.Is(err, ErrGenerationFailed) {
				t.Error("validation error should match ErrGenerationFailed")
			}
		})
	}
}

func TestGenerateQuizBatchMalformedJSON(t *testing.T) {
	c := newTestClient(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)}))

	_, err := c.GenerateQuizBatch(context.Background(), physicsBatch())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateQuizBatchProviderError(t *testing.T) {
	rateLimit := &llm.ErrRateLimit{}
	c := newTestClient(llm.NewMockProvider(llm.MockResponse{Err: rateLimit}))

	_, err := c.GenerateQuizBatch(context.Background(), physicsBatch())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Error("expected the provider error to stay reachable")
	}
	var ge *GenerationError
	if !errors.As(err, &ge) || ge.Purpose != PurposeBatch {
		t.Errorf("generation error = %+v", ge)
	}
}

func TestGenerateFormulaSheet(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("  ভেক্টর\n- A·B = AB cosθ \n"))
	c := newTestClient(mock)

	text, err := c.GenerateFormulaSheet(context.Background(), FormulaRequest{
		Subject: catalog.SubjectPhysics,
		Chapter: "Vector",
		Paper:   catalog.PaperFirst,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ভেক্টর\n- A·B = AB cosθ" {
		t.Errorf("text = %q", text)
	}
	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("formula sheets are plain text")
	}
	if !strings.Contains(req.Messages[0].Content, "Chapter: Vector") {
		t.Errorf("prompt = %q", req.Messages[0].Content)
	}
	if got := mock.Labels[0].Topic; got != "Physics 1st / Vector" {
		t.Errorf("topic = %q", got)
	}
}

func TestGenerateFormulaSheetEmpty(t *testing.T) {
	c := newTestClient(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(" \n")}))

	_, err := c.GenerateFormulaSheet(context.Background(), FormulaRequest{Subject: catalog.SubjectMath, Chapter: "Conics"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestAnswerTutorQuery(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("ত্বরণ হলো বেগের পরিবর্তনের হার।"))
	c := newTestClient(mock)

	text, err := c.AnswerTutorQuery(context.Background(), TutorRequest{Prompt: "ত্বরণ কী?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ত্বরণ হলো বেগের পরিবর্তনের হার।" {
		t.Errorf("text = %q", text)
	}
	msg := mock.Calls[0].Messages[0]
	if !strings.HasSuffix(msg.Content, "User Question: ত্বরণ কী?") {
		t.Errorf("prompt = %q", msg.Content)
	}
	if len(msg.Images) != 0 {
		t.Error("expected no image")
	}
	if l := mock.Labels[0]; l.Purpose != PurposeTutor || l.Topic != "" {
		t.Errorf("label = %+v", l)
	}
}

func TestAnswerTutorQueryImageOnly(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("এটি একটি বর্তনী।")})
	c := newTestClient(mock)

	img := &Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	if _, err := c.AnswerTutorQuery(context.Background(), TutorRequest{Image: img}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0]
	if !strings.HasSuffix(msg.Content, "User Question: "+defaultImagePrompt) {
		t.Errorf("prompt = %q", msg.Content)
	}
	if len(msg.Images) != 1 || msg.Images[0].MIMEType != "image/png" {
		t.Errorf("images = %+v", msg.Images)
	}
}

func TestAnswerTutorQueryEmptyAnswer(t *testing.T) {
	c := newTestClient(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("")}))

	text, err := c.AnswerTutorQuery(context.Background(), TutorRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != NoAnswerText {
		t.Errorf("text = %q, want fallback", text)
	}
}

func TestAnswerTutorQueryFailure(t *testing.T) {
	c := newTestClient(llm.NewMockProvider(llm.MockResponse{Err: errors.New("network down")}))

	_, err := c.AnswerTutorQuery(context.Background(), TutorRequest{Prompt: "hi"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestSingleAttemptOnly(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: batchJSON(1)},
	)
	c := newTestClient(mock)

	if _, err := c.GenerateQuizBatch(context.Background(), physicsBatch()); err == nil {
		t.Fatal("expected failure")
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestDecodeQuestionNamesMissingFields(t *testing.T) {
	_, err := decodeQuestion(json.RawMessage(`{"options":["a","b","c","d"]}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, field := range []string{"text", "correctAnswer", "explanation"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name %s", err, field)
		}
	}

	q, err := decodeQuestion(json.RawMessage(`{"text":"q","options":["a","b","c","d"],"correctAnswer":0,"explanation":""}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *q.CorrectAnswer != 0 || *q.Explanation != "" {
		t.Errorf("decoded %+v", q)
	}
}

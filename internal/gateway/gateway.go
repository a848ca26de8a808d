// Package gateway is the AI boundary of hsclab: formula sheets, quiz batches
// and tutor answers, each a single request with no retry.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/llm"
)

// LLM purposes recorded with every request.
const (
	PurposeFormula = "formula-sheet"
	PurposeBatch   = "quiz-batch"
	PurposeTutor   = "tutor"
)

// DefaultBatchSize is the number of questions requested per batch.
const DefaultBatchSize = 10

// Gateway is what the sessions consume.
type Gateway interface {
	GenerateFormulaSheet(ctx context.Context, req FormulaRequest) (string, error)
	GenerateQuizBatch(ctx context.Context, req BatchRequest) ([]catalog.Question, error)
	AnswerTutorQuery(ctx context.Context, req TutorRequest) (string, error)
}

// FormulaRequest names the sheet to generate.
type FormulaRequest struct {
	Subject catalog.Subject
	Chapter string
	Paper   catalog.Paper
}

// BatchRequest names the quiz batch to generate. Size <= 0 means
// DefaultBatchSize.
type BatchRequest struct {
	Subject catalog.Subject
	Chapter string
	Paper   catalog.Paper
	Size    int
}

// Image is an attachment for a tutor query.
type Image struct {
	MIMEType string
	Data     []byte
}

// TutorRequest is one tutor turn. Prompt may be blank when Image is set.
type TutorRequest struct {
	Prompt string
	Image  *Image
}

// Config tunes the LLM requests.
type Config struct {
	FormulaMaxTokens int
	BatchMaxTokens   int
	TutorMaxTokens   int
	Temperature      float64

	// Timeout bounds each call. Zero means no extra deadline.
	Timeout time.Duration
}

// DefaultConfig returns the token budgets used in production.
func DefaultConfig() Config {
	return Config{
		FormulaMaxTokens: 4096,
		BatchMaxTokens:   8192,
		TutorMaxTokens:   2048,
		Temperature:      0.7,
		Timeout:          60 * time.Second,
	}
}

// Client implements Gateway on top of an llm.Provider.
type Client struct {
	provider llm.Provider
	config   Config
	log      zerolog.Logger
	newID    func() string
}

// New creates a Client. The provider should not retry.
func New(provider llm.Provider, cfg Config, log zerolog.Logger) *Client {
	return &Client{
		provider: provider,
		config:   cfg,
		log:      log.With().Str("component", "gateway").Logger(),
		newID:    uuid.NewString,
	}
}

var _ Gateway = (*Client)(nil)

func (c *Client) generate(ctx context.Context, label llm.Label, req llm.Request) (*llm.Response, error) {
	ctx = llm.WithLabel(ctx, label)
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Purpose: label.Purpose, Err: err}
	}
	return resp, nil
}

// GenerateFormulaSheet returns plain-text formula notes. Blank text is a
// failure.
func (c *Client) GenerateFormulaSheet(ctx context.Context, req FormulaRequest) (string, error) {
	resp, err := c.generate(ctx, llm.Label{
		Purpose: PurposeFormula,
		Topic:   topic(req.Subject, req.Paper, req.Chapter),
	}, llm.Request{
		System: formulaSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFormulaMessage(req)},
		},
		MaxTokens:   c.config.FormulaMaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", &GenerationError{Purpose: PurposeFormula, Err: fmt.Errorf("empty formula sheet")}
	}
	return text, nil
}

// batchOutput is the raw LLM response before validation. Entries are
// decoded one by one so a bad entry can be reported by index.
type batchOutput struct {
	Questions []json.RawMessage `json:"questions"`
}

// questionOutput uses pointers so a missing field is told apart from a
// zero value.
type questionOutput struct {
	Text          *string  `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   *string  `json:"explanation"`
}

// decodeQuestion rejects unknown fields and missing required ones.
func decodeQuestion(raw json.RawMessage) (questionOutput, error) {
	var q questionOutput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return q, err
	}
	var missing []string
	if q.Text == nil {
		missing = append(missing, "text")
	}
	if q.Options == nil {
		missing = append(missing, "options")
	}
	if q.CorrectAnswer == nil {
		missing = append(missing, "correctAnswer")
	}
	if q.Explanation == nil {
		missing = append(missing, "explanation")
	}
	if len(missing) > 0 {
		return q, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return q, nil
}

// GenerateQuizBatch returns a validated batch in model order. Any invalid
// entry fails the whole batch; an empty batch returns ErrEmptyBatch.
func (c *Client) GenerateQuizBatch(ctx context.Context, req BatchRequest) ([]catalog.Question, error) {
	if req.Size <= 0 {
		req.Size = DefaultBatchSize
	}

	resp, err := c.generate(ctx, llm.Label{
		Purpose: PurposeBatch,
		Topic:   topic(req.Subject, req.Paper, req.Chapter),
	}, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildBatchMessage(req)},
		},
		Schema:      BatchSchema,
		MaxTokens:   c.config.BatchMaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Purpose: PurposeBatch, Err: fmt.Errorf("parse batch: %w", err)}
	}
	if len(raw.Questions) == 0 {
		return nil, ErrEmptyBatch
	}

	batchID := c.newID()
	out := make([]catalog.Question, 0, len(raw.Questions))
	for i, entry := range raw.Questions {
		rq, err := decodeQuestion(entry)
		if err != nil {
			c.log.Warn().Err(err).Int("index", i).Msg("rejecting generated batch")
			return nil, &ValidationError{Index: i, Message: err.Error()}
		}
		q := catalog.Question{
			ID:            fmt.Sprintf("ai-%s-%d", batchID, i),
			Text:          strings.TrimSpace(*rq.Text),
			Options:       rq.Options,
			CorrectAnswer: *rq.CorrectAnswer,
			Explanation:   strings.TrimSpace(*rq.Explanation),
		}
		if err := catalog.ValidateQuestion(q); err != nil {
			c.log.Warn().Err(err).Int("index", i).Msg("rejecting generated batch")
			return nil, &ValidationError{Index: i, Message: err.Error()}
		}
		out = append(out, q)
	}

	c.log.Debug().
		Str("subject", string(req.Subject)).
		Str("chapter", req.Chapter).
		Int("questions", len(out)).
		Msg("quiz batch generated")
	return out, nil
}

// AnswerTutorQuery sends one tutor turn, image first. An empty answer comes
// back as a fixed apology rather than an error.
func (c *Client) AnswerTutorQuery(ctx context.Context, req TutorRequest) (string, error) {
	msg := llm.Message{Role: llm.RoleUser, Content: buildTutorMessage(req.Prompt)}
	if req.Image != nil {
		msg.Images = []llm.Image{{MIMEType: req.Image.MIMEType, Data: req.Image.Data}}
	}

	resp, err := c.generate(ctx, llm.Label{Purpose: PurposeTutor}, llm.Request{
		System:      tutorSystemPrompt,
		Messages:    []llm.Message{msg},
		MaxTokens:   c.config.TutorMaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return NoAnswerText, nil
	}
	return text, nil
}

// topic renders "Physics 1st / Vector", or "ICT / Networking" for subjects
// without papers.
func topic(s catalog.Subject, p catalog.Paper, chapter string) string {
	name := string(s)
	if p != catalog.PaperNone {
		name += " " + string(p)
	}
	return name + " / " + chapter
}

// NoAnswerText is shown when the tutor model returns nothing.
const NoAnswerText = "দুঃখিত, উত্তর পাওয়া যায়নি।"

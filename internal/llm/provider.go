// Package llm hides the model vendors behind one Provider interface. The
// gateway builds Requests; providers translate them to Gemini, Anthropic or
// OpenAI-compatible calls and return the reply as JSON or plain text.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends one request to a model. Implementations make exactly one
// attempt and return typed errors (see errors.go).
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for structured output through the vendor's
	// native mechanism. The reply is validated against it before it is
	// returned. Without a schema the reply is plain text.
	Schema *Schema

	MaxTokens int

	// Temperature 0 leaves the vendor default.
	Temperature float64
}

// Message is one turn. Images are placed ahead of the text.
type Message struct {
	Role    Role
	Content string
	Images  []Image
}

// Image is inline binary data, e.g. a photo of a board question.
type Image struct {
	MIMEType string
	Data     []byte
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name and
// the compile cache key, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is what came back.
type Response struct {
	// Content is validated JSON for schema requests, raw text otherwise.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which can
	// differ from the configured alias.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Text returns Content as trimmed text, for plain-text replies.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

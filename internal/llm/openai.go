package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider speaks the Chat Completions API. OpenRouterProvider reuses
// it with a different base URL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAICompatible(cfg.APIKey, resolveModel(cfg.Model, openaiModels), cfg.BaseURL, nil), nil
}

// newOpenAICompatible takes model as a final id. An empty baseURL means
// api.openai.com; a nil hc keeps the SDK's client.
func newOpenAICompatible(apiKey, model, baseURL string, hc *http.Client) *OpenAIProvider {
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	if hc != nil {
		conf.HTTPClient = hc
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(conf), model: model}
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := openAIRequest(p.model, req)
	if err != nil {
		return nil, err
	}
	out, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in OpenAI response")}
	}

	choice := out.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	switch {
	case choice.Message.Refusal != "":
		return nil, &ErrBlocked{Reason: choice.Message.Refusal}
	case choice.FinishReason == openai.FinishReasonContentFilter:
		return nil, &ErrBlocked{Reason: string(choice.FinishReason)}
	case req.Schema != nil && choice.FinishReason == openai.FinishReasonLength:
		return nil, &ErrTruncated{Content: content}
	case req.Schema != nil:
		if content, err = validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	stop := "end"
	if choice.FinishReason == openai.FinishReasonLength {
		stop = "max_tokens"
	}
	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
			TotalTokens:  out.Usage.TotalTokens,
		},
		Model:      out.Model,
		StopReason: stop,
	}, nil
}

func openAIRequest(model string, req Request) (openai.ChatCompletionRequest, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, openAIMessage(m))
	}

	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return chatReq, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}
	return chatReq, nil
}

// openAIMessage sends text-only turns as plain Content. With images it must
// use MultiContent instead; the API rejects both at once.
func openAIMessage(m Message) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	if m.Role == RoleAssistant {
		role = openai.ChatMessageRoleAssistant
	}
	if len(m.Images) == 0 {
		return openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}

	parts := make([]openai.ChatMessagePart, 0, len(m.Images)+1)
	for _, img := range m.Images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	parts = append(parts, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: m.Content})
	return openai.ChatCompletionMessage{Role: role, MultiContent: parts}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Optional attribution headers; OpenRouter shows them on its usage pages.
	openRouterReferer = "https://github.com/zoomerslab/hsclab"
	openRouterTitle   = "HSC Lab"
)

// openRouterModels maps friendly names to OpenRouter slugs. Anything else
// is sent as given.
var openRouterModels = map[string]string{
	"gemini-flash": "google/gemini-3-flash-preview",
	"claude-haiku": "anthropic/claude-haiku-4.5",
	"gpt-mini":     "openai/gpt-4o-mini",
}

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API through
// the OpenAI SDK.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	hc := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner := newOpenAICompatible(cfg.APIKey, resolveModel(cfg.Model, openRouterModels), baseURL, hc)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}

package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging. Calls are never retried.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log zerolog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, eventRepo, log), nil
}

// ResolveConfig returns the HSCLAB_* configuration when it validates, and
// otherwise falls back to the first well-known provider key in the
// environment.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("HSCLAB_LLM_PROVIDER") == "" {
		if discovered, ok := DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			return discovered, nil
		}
	}
	return Config{}, fmt.Errorf("no LLM provider configured (set GEMINI_API_KEY or HSCLAB_LLM_PROVIDER): %w", err)
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log zerolog.Logger) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, Config{}, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}

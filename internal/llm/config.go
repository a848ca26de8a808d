package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures the provider behind the AI gateway.
type Config struct {
	// Provider is one of "gemini", "anthropic", "openai", "openrouter" or
	// "mock".
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds one request. Requests are never retried.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// providerVars ties a provider name to its key and model fields. The
// HSCLAB_<NAME>_API_KEY and HSCLAB_<NAME>_MODEL variables fill them;
// wellKnown is the vendor's own variable, probed by DiscoverConfig.
type providerVars struct {
	name      string
	wellKnown string
	fields    func(*Config) (key, model *string)
}

// Discovery order: Gemini is the default, OpenRouter the last resort.
var providerTable = []providerVars{
	{"gemini", "GEMINI_API_KEY", func(c *Config) (*string, *string) { return &c.Gemini.APIKey, &c.Gemini.Model }},
	{"openai", "OPENAI_API_KEY", func(c *Config) (*string, *string) { return &c.OpenAI.APIKey, &c.OpenAI.Model }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) (*string, *string) { return &c.Anthropic.APIKey, &c.Anthropic.Model }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) (*string, *string) { return &c.OpenRouter.APIKey, &c.OpenRouter.Model }},
}

func (p providerVars) env(suffix string) string {
	return "HSCLAB_" + strings.ToUpper(p.name) + "_" + suffix
}

func lookupProvider(name string) (providerVars, bool) {
	for _, p := range providerTable {
		if p.name == name {
			return p, true
		}
	}
	return providerVars{}, false
}

// DefaultConfig uses Gemini Flash, the model the study prompts are tuned
// for, with a one minute timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "gemini-flash"},
		Timeout:    60 * time.Second,
	}
}

// ConfigFromEnv overlays HSCLAB_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("HSCLAB_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if d, err := time.ParseDuration(os.Getenv("HSCLAB_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	for _, p := range providerTable {
		key, model := p.fields(&cfg)
		setFromEnv(key, p.env("API_KEY"))
		setFromEnv(model, p.env("MODEL"))
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "HSCLAB_OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "HSCLAB_OPENROUTER_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose vendor key variable
// (GEMINI_API_KEY and so on) is set.
func DiscoverConfig() (Config, bool) {
	for _, p := range providerTable {
		k := os.Getenv(p.wellKnown)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = p.name
		key, _ := p.fields(&cfg)
		*key = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	p, ok := lookupProvider(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key, _ := p.fields(&c); *key == "" {
		return fmt.Errorf("%s is required for the %s provider", p.env("API_KEY"), p.name)
	}
	return nil
}

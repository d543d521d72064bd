package llm

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix is prepended to every variable read by ConfigFromEnv.
const EnvPrefix = "BRIDGEWISE_"

// Config holds all LLM provider configuration. World generation is the only
// consumer; play never needs a provider.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string `env:"LLM_PROVIDER" validate:"oneof=anthropic openai gemini openrouter mock"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `env:"LLM_TIMEOUT" validate:"gt=0"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" validate:"gte=1"`
	InitialWait time.Duration `env:"INITIAL_WAIT"`
	MaxWait     time.Duration `env:"MAX_WAIT" validate:"gtefield=InitialWait"`
	Multiplier  float64       `env:"MULTIPLIER" validate:"gte=1"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		// A whole world is one large response.
		Timeout: 2 * time.Minute,
	}
}

// ConfigFromEnv builds a Config from BRIDGEWISE_* environment variables,
// keeping defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return configFromEnv(env.Options{Prefix: EnvPrefix})
}

func configFromEnv(opts env.Options) (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// discoveryOrder lists the standard API key variables checked by
// DiscoverConfig, in priority order.
var discoveryOrder = []struct {
	envVar   string
	provider string
	set      func(*Config, string)
}{
	{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENROUTER_API_KEY", "openrouter", func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// DiscoverConfig checks the providers' standard API key variables and
// returns a Config for the first one found. lookup is usually os.LookupEnv.
func DiscoverConfig(lookup func(string) (string, bool)) (Config, bool) {
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		if k, ok := lookup(d.envVar); ok && k != "" {
			cfg.Provider = d.provider
			d.set(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

var validate = validator.New()

// Validate checks field bounds and that the selected provider has its API
// key set.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid LLM config: %w", err)
	}

	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	}
	if key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			EnvPrefix, envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "openrouter":
		return "OPENROUTER"
	case "gemini":
		return "GEMINI"
	default:
		return "ANTHROPIC"
	}
}

package llm

import (
	"fmt"
	"time"
)

// Config selects and configures the provider behind LLM-generated content.
type Config struct {
	// Provider is "openai", "anthropic" or "mock".
	Provider  string          `yaml:"provider"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Retry     RetryConfig     `yaml:"retry"`
	MaxTokens int             `yaml:"maxTokens"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
}

// RetryConfig bounds retries of transient failures. Section timeouts still
// cap the total time spent.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	InitialWait time.Duration `yaml:"initialWait"`
	MaxWait     time.Duration `yaml:"maxWait"`
	Multiplier  float64       `yaml:"multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 250 * time.Millisecond,
			MaxWait:     2 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens: 1500,
	}
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
			return fmt.Errorf("openai provider needs an API key or a base URL")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("anthropic provider needs an API key")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

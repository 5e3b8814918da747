package embedding

import (
	"fmt"
	"time"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	DefaultEndpoint  = "http://localhost:11434"
	DefaultModel     = "nomic-embed-text"
	DefaultDimension = 768
	DefaultTimeout   = 30 * time.Second
)

type Config struct {
	// Which provider to use: "ollama" or "openai"
	Provider string `koanf:"provider"`

	// Endpoint is the base URL of the embedding service. The ollama provider
	// posts to {Endpoint}/api/embed; the openai provider uses it as API base URL.
	Endpoint string `koanf:"endpoint"`

	Model  string `koanf:"model"`
	APIKey string `koanf:"api_key"`

	// Dimension every returned vector must have.
	Dimension int `koanf:"dimension"`

	HTTPTimeout time.Duration `koanf:"http_timeout"`
}

// DefaultConfig targets a local Ollama with nomic-embed-text.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOllama,
		Endpoint:    DefaultEndpoint,
		Model:       DefaultModel,
		Dimension:   DefaultDimension,
		HTTPTimeout: DefaultTimeout,
	}
}

func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			return fmt.Errorf("ollama provider requires an endpoint")
		}
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("openai provider requires an api key")
		}
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("embedding model is required")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}
	return nil
}

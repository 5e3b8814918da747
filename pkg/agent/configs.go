package agent

import "time"

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultTimeout   = 60 * time.Second
	DefaultMaxTokens = 512
)

// Config of the OpenAI compatible chat endpoint used for metadata enrichment.
type Config struct {
	// Enabled turns enrichment on. When off, stored metadata is derived
	// deterministically from the document.
	Enabled bool `koanf:"enabled"`

	// Endpoint is the API base URL, e.g. http://localhost:11434/v1 for Ollama.
	// Empty uses the OpenAI default.
	Endpoint string `koanf:"endpoint"`

	APIKey    string        `koanf:"api_key"`
	Model     string        `koanf:"model"`
	MaxTokens int           `koanf:"max_tokens" validate:"gte=0"`
	Timeout   time.Duration `koanf:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
		Timeout:   DefaultTimeout,
	}
}

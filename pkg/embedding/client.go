package embedding

import (
	"context"
	"fmt"
)

// Provider turns texts into vectors. Implementations call one remote API and
// do not retry.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Client is the public entrypoint for computing embeddings.
//
// It hides the provider and enforces the response contract: one vector per
// input, in input order, each of the configured dimension.
type Client struct {
	provider  Provider
	dimension int
}

// NewClient constructs a Client from Config and builds the configured provider.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		p = newOpenAIProvider(cfg)
	default:
		p, err = newOllamaProvider(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return NewClientWithProvider(p, cfg.Dimension), nil
}

// NewClientWithProvider wraps an already built provider.
func NewClientWithProvider(p Provider, dimension int) *Client {
	return &Client{provider: p, dimension: dimension}
}

// Dimension is the length of every vector returned by Embed.
func (c *Client) Dimension() int {
	return c.dimension
}

// Embed returns one vector per text. An empty input returns an empty result
// without calling the provider.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := c.provider.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrEmbeddingService, len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != c.dimension {
			return nil, fmt.Errorf("%w: embedding %d has dimension %d, want %d", ErrEmbeddingService, i, len(v), c.dimension)
		}
	}
	return vectors, nil
}

// EmbedOne embeds a single text.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

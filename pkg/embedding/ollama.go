package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OllamaProvider calls the batch endpoint POST {endpoint}/api/embed.
type OllamaProvider struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

func newOllamaProvider(cfg Config) (*OllamaProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ollama: missing endpoint")
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OllamaProvider{
		// Remove trailing slash if user added it.
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (p *OllamaProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var parsed embedResponse
	err := p.postJSON(ctx, p.baseURL+"/api/embed", embedRequest{Model: p.model, Input: texts}, &parsed)
	if err != nil {
		return nil, err
	}
	return parsed.Embeddings, nil
}

// Close releases idle keep-alive connections.
func (p *OllamaProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

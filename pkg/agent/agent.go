package agent

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// GenerateOptions tune a single Generate call. Zero values fall back to the
// agent's config.
type GenerateOptions struct {
	System      string
	MaxTokens   int
	Temperature *float64
}

// Generation is the text answer of the model.
type Generation struct {
	Text  string
	Model string
}

// Agent sends prompts to a chat completion endpoint.
type Agent struct {
	client     *openai.Client
	httpClient *http.Client
	cfg        Config
	logger     Logger
}

// NewAgent builds the chat client. A disabled config yields an Agent whose
// calls return ErrDisabled without any network traffic.
func NewAgent(cfg Config, logger Logger) (*Agent, error) {
	a := &Agent{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("agent disabled, metadata will be derived locally", nil, nil)
		return a, nil
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("agent: model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	a.httpClient = &http.Client{Timeout: timeout}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(a.httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := openai.NewClient(opts...)
	a.client = &client

	logger.Info("agent initialized", nil, map[string]interface{}{
		"model":    cfg.Model,
		"endpoint": cfg.Endpoint,
	})
	return a, nil
}

func (a *Agent) Enabled() bool {
	return a != nil && a.client != nil
}

// Generate sends prompt as the user message and returns the first choice.
func (a *Agent) Generate(ctx context.Context, prompt string, opts GenerateOptions) (*Generation, error) {
	if !a.Enabled() {
		return nil, ErrDisabled
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if opts.System != "" {
		messages = append(messages, openai.SystemMessage(opts.System))
	}
	messages = append(messages, openai.UserMessage(prompt))

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = a.cfg.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.cfg.Model),
		Messages: messages,
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAgent, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrAgent)
	}

	return &Generation{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
	}, nil
}

// Close releases idle keep-alive connections.
func (a *Agent) Close() error {
	if a.httpClient != nil {
		a.httpClient.CloseIdleConnections()
	}
	return nil
}

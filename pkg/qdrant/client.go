package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Logger defines the logging methods used by the qdrant package.
//
//go:generate mockgen -source=client.go -destination=mock_logger.go -package=qdrant
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// ──────────────────────────────────────────────────────────────
// QdrantClient
// ──────────────────────────────────────────────────────────────

// QdrantClient wraps the official Qdrant Go client and owns its connection.
type QdrantClient struct {
	api    *qdrant.Client
	cfg    Config
	logger Logger
}

const (
	defaultPort      = 6334
	defaultBatchSize = 200 // default chunk size for batch upserts
)

// NewQdrantClient constructs a client and verifies connectivity with a health check.
func NewQdrantClient(cfg Config, logger Logger) (*QdrantClient, error) {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	logger.Info("[Qdrant] connecting", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
		"tls":      cfg.UseTLS,
	})

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{api: client, cfg: cfg, logger: logger}

	if err := qc.healthCheck(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return qc, nil
}

// healthCheck calls Qdrant's health endpoint with the configured timeout.
func (c *QdrantClient) healthCheck() error {
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	c.logger.Info("[Qdrant] health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// Client exposes the underlying SDK client.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close closes the gRPC connection.
func (c *QdrantClient) Close() error {
	c.logger.Info("[Qdrant] closing client connection", nil, nil)
	return c.api.Close()
}

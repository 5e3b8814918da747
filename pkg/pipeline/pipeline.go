package pipeline

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/tracer"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Embedder computes one vector per text. *embedding.Client implements it.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// deps are shared by the three pipelines. None of them hold per-request
// state, so one instance of each serves all requests.
type deps struct {
	cfg     Config
	store   vectordb.Service
	tracer  *tracer.Tracer
	metrics *metrics.Metrics
	logger  Logger
}

// Option customizes a pipeline.
type Option func(*deps)

func WithTracer(t *tracer.Tracer) Option {
	return func(d *deps) { d.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

func newDeps(cfg Config, store vectordb.Service, logger Logger, opts []Option) deps {
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	if cfg.CandidateK <= 0 {
		cfg.CandidateK = DefaultCandidateK
	}
	d := deps{cfg: cfg, store: store, logger: logger}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

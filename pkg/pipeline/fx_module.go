package pipeline

import (
	"github.com/Aleph-Alpha/job-openings-rag/pkg/chunker"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/embedding"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/tracer"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"go.uber.org/fx"
)

// FXModule provides the chunker and the three pipelines. It needs a
// vectordb.Service, an *embedding.Client, a *tracer.Tracer and a
// *metrics.Metrics in the container.
var FXModule = fx.Module("pipeline",
	fx.Provide(
		chunker.NewChunker,
		func(cfg Config, c *chunker.Chunker, e *embedding.Client, store vectordb.Service,
			t *tracer.Tracer, m *metrics.Metrics, log *logger.Logger) *Indexer {
			return NewIndexer(cfg, c, e, store, log, WithTracer(t), WithMetrics(m))
		},
		func(cfg Config, e *embedding.Client, store vectordb.Service,
			t *tracer.Tracer, m *metrics.Metrics, log *logger.Logger) *Querier {
			return NewQuerier(cfg, e, store, log, WithTracer(t), WithMetrics(m))
		},
		func(cfg Config, store vectordb.Service,
			t *tracer.Tracer, m *metrics.Metrics, log *logger.Logger) *Deleter {
			return NewDeleter(cfg, store, log, WithTracer(t), WithMetrics(m))
		},
	),
)

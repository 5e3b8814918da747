package service

import (
	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"go.uber.org/fx"
)

var FXModule = fx.Module("service",
	fx.Provide(func(
		store docstore.Store,
		ix *pipeline.Indexer,
		q *pipeline.Querier,
		d *pipeline.Deleter,
		a *agent.Agent,
		e *events.Emitter,
		m *metrics.Metrics,
		log *logger.Logger,
	) *JobOpenings {
		return New(Params{
			Store:     store,
			Indexer:   ix,
			Querier:   q,
			Deleter:   d,
			Describer: a,
			Emitter:   e,
			Metrics:   m,
			Logger:    log,
		})
	}),
)

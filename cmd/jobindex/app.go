package main

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/config"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/embedding"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/minio"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pgvector"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/qdrant"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/server"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/service"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/tracer"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"go.uber.org/fx"
)

// appOptions assembles the application for cfg. Backend modules are picked
// here so unused clients are never constructed.
func appOptions(cfg *config.Config) fx.Option {
	opts := []fx.Option{
		fx.Supply(
			cfg.Logger,
			cfg.Metrics,
			cfg.Tracer,
			cfg.Server,
			cfg.Pipeline,
			cfg.Chunker,
			cfg.Embedding,
			cfg.Qdrant,
			cfg.Postgres,
			cfg.Pgvector,
			cfg.Docstore,
			cfg.Minio,
			cfg.Agent,
			cfg.Events,
			cfg.Kafka,
			cfg.Rabbit,
		),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		embedding.FXModule,
		vectorModule(cfg.Vector.Backend),
		docstore.Module(cfg.Docstore.Backend),
		events.Module(cfg.Events.Backend),
		agent.FXModule,
		pipeline.FXModule,
		service.FXModule,
		server.FXModule,
		fx.Provide(
			fx.Annotate(vectorHealthCheck, fx.ResultTags(server.HealthChecks)),
		),
	}

	if cfg.Docstore.Backend == docstore.BackendMinio {
		opts = append(opts,
			fx.Provide(fx.Annotate(minioHealthCheck, fx.ResultTags(server.HealthChecks))),
		)
	}
	if cfg.UsesPostgres() {
		opts = append(opts,
			postgres.FXModule,
			fx.Provide(fx.Annotate(postgresHealthCheck, fx.ResultTags(server.HealthChecks))),
		)
	}
	return fx.Options(opts...)
}

func vectorModule(backend string) fx.Option {
	switch backend {
	case config.VectorBackendQdrant:
		return qdrant.FXModule
	case config.VectorBackendPgvector:
		return pgvector.FXModule
	default:
		return fx.Module("vector-memory",
			fx.Provide(func() vectordb.Service { return vectordb.NewMemoryStore() }),
		)
	}
}

func vectorHealthCheck(store vectordb.Service) server.HealthCheck {
	return server.HealthCheck{
		Name: "vector_store",
		Check: func(ctx context.Context) error {
			_, err := store.ListIndexes(ctx)
			return err
		},
	}
}

func postgresHealthCheck(db *postgres.Postgres) server.HealthCheck {
	return server.HealthCheck{
		Name: "postgres",
		Check: func(ctx context.Context) error {
			_, err := db.Exec(ctx, "SELECT 1")
			return err
		},
	}
}

func minioHealthCheck(client *minio.Minio) server.HealthCheck {
	return server.HealthCheck{Name: "minio", Check: client.Ping}
}

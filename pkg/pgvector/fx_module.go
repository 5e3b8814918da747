package pgvector

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"go.uber.org/fx"
)

// FXModule provides the pgvector Store as vectordb.Service. It expects
// postgres.FXModule (or a *postgres.Postgres) and a pgvector.Config.
var FXModule = fx.Module("pgvector",
	fx.Provide(
		func(db *postgres.Postgres, cfg Config, log *logger.Logger) (*Store, error) {
			return NewStore(context.Background(), db, cfg, log)
		},
		func(s *Store) vectordb.Service { return s },
	),
)

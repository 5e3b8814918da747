package docstore

import (
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/minio"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"go.uber.org/fx"
)

// FileModule provides a FileStore as Store.
var FileModule = fx.Module("docstore-file",
	fx.Provide(func(cfg Config, log *logger.Logger) (Store, error) {
		return NewFileStore(cfg.Dir, cfg.ListConcurrency, log)
	}),
)

// MinioModule provides an ObjectStore as Store; it needs minio.FXModule.
var MinioModule = fx.Module("docstore-minio",
	fx.Provide(func(cfg Config, client *minio.Minio, log *logger.Logger) Store {
		return NewObjectStore(client, cfg.Prefix, cfg.ListConcurrency, log)
	}),
)

// PostgresModule provides a PostgresStore as Store; it needs postgres.FXModule.
var PostgresModule = fx.Module("docstore-postgres",
	fx.Provide(func(db *postgres.Postgres, log *logger.Logger) (Store, error) {
		return NewPostgresStore(db, log)
	}),
)

// Module returns the fx module for the configured backend.
func Module(backend string) fx.Option {
	switch backend {
	case BackendMinio:
		return fx.Options(minio.FXModule, MinioModule)
	case BackendPostgres:
		return PostgresModule
	default:
		return FileModule
	}
}

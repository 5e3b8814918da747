package qdrant

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Qdrant vector store backend.
//
// The module:
//  1. Provides *QdrantClient built from a qdrant.Config in the container.
//  2. Provides *Adapter and exposes it as vectordb.Service.
//  3. Invokes RegisterQdrantLifecycle to close the connection on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		newQdrantClientFx,
		NewAdapter,
		func(a *Adapter) vectordb.Service { return a },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

func newQdrantClientFx(cfg Config, log *logger.Logger) (*QdrantClient, error) {
	return NewQdrantClient(cfg, log)
}

// RegisterQdrantLifecycle closes the Qdrant client when the application stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var err error
			once.Do(func() {
				err = client.Close()
			})
			return err
		},
	})
}

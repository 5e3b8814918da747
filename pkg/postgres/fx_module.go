package postgres

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"go.uber.org/fx"
)

// FXModule provides *Postgres from a postgres.Config and runs its connection
// monitor for the lifetime of the application.
var FXModule = fx.Module("postgres",
	fx.Provide(
		func(cfg Config, log *logger.Logger) (*Postgres, error) {
			return NewPostgres(cfg, log)
		},
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle starts MonitorConnection and RetryConnection on
// start and closes the pool on stop.
func RegisterPostgresLifecycle(lifecycle fx.Lifecycle, postgres *Postgres) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				postgres.MonitorConnection(ctx)
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				postgres.RetryConnection(ctx, postgres.logger)
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			err := postgres.Close()
			wg.Wait()
			return err
		},
	})
}

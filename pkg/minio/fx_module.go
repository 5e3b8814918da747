package minio

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"go.uber.org/fx"
)

var FXModule = fx.Module("minio",
	fx.Provide(
		func(cfg Config, log *logger.Logger) (*Minio, error) {
			return NewClient(cfg, log)
		},
	),
	fx.Invoke(RegisterLifecycle),
)

// RegisterLifecycle runs Watch while the application is up.
func RegisterLifecycle(lc fx.Lifecycle, mi *Minio) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				mi.Watch(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			mi.Close()
			cancel()
			wg.Wait()
			return nil
		},
	})
}

package rabbit

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"go.uber.org/fx"
)

var FXModule = fx.Module("rabbit",
	fx.Provide(
		func(cfg Config, log *logger.Logger) (*Rabbit, error) {
			return NewClient(cfg, log)
		},
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

func RegisterRabbitLifecycle(lc fx.Lifecycle, client *Rabbit, cfg Config) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				client.RetryConnection(client.logger, cfg)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := client.Close()
			wg.Wait()
			return err
		},
	})
}

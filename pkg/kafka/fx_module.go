package kafka

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"go.uber.org/fx"
)

var FXModule = fx.Module("kafka",
	fx.Provide(
		func(cfg Config, log *logger.Logger) (*Producer, error) {
			return NewProducer(cfg, log)
		},
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

func RegisterKafkaLifecycle(lc fx.Lifecycle, p *Producer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Close()
		},
	})
}

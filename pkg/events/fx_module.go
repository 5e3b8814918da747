package events

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/kafka"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/rabbit"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/tracer"
	"go.uber.org/fx"
)

var emitterModule = fx.Module("events-emitter",
	fx.Provide(func(p Publisher, m *metrics.Metrics, log *logger.Logger) *Emitter {
		return NewEmitter(p, m, log)
	}),
	fx.Invoke(RegisterEmitterLifecycle),
)

// RegisterEmitterLifecycle drains queued events on shutdown. The hook is
// appended after the broker client hooks, so it stops before they close.
func RegisterEmitterLifecycle(lc fx.Lifecycle, e *Emitter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return e.Close(ctx)
		},
	})
}

// Module returns the publisher for backend together with the Emitter.
// The kafka and rabbit backends bring their client modules along.
func Module(backend string) fx.Option {
	switch backend {
	case BackendKafka:
		return fx.Options(
			kafka.FXModule,
			fx.Provide(func(p *kafka.Producer, t *tracer.Tracer) Publisher {
				return NewKafkaPublisher(p, t)
			}),
			emitterModule,
		)
	case BackendRabbit:
		return fx.Options(
			rabbit.FXModule,
			fx.Provide(func(c *rabbit.Rabbit) Publisher {
				return NewRabbitPublisher(c)
			}),
			emitterModule,
		)
	default:
		return fx.Options(
			fx.Provide(func() Publisher { return Noop{} }),
			emitterModule,
		)
	}
}

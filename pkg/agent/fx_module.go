package agent

import (
	"context"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"go.uber.org/fx"
)

var FXModule = fx.Module("agent",
	fx.Provide(func(cfg Config, log *logger.Logger) (*Agent, error) {
		return NewAgent(cfg, log)
	}),
	fx.Invoke(func(lc fx.Lifecycle, a *Agent) {
		lc.Append(fx.StopHook(func(context.Context) error {
			return a.Close()
		}))
	}),
)

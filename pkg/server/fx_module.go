package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/service"
	"go.uber.org/fx"
)

// HealthChecks is the fx value group collecting HealthCheck values.
const HealthChecks = `group:"health_checks"`

type serverParams struct {
	fx.In

	Config  Config
	Service *service.JobOpenings
	Metrics *metrics.Metrics
	Checks  []HealthCheck `group:"health_checks"`
	Logger  *logger.Logger
}

var FXModule = fx.Module("server",
	fx.Provide(func(p serverParams) *Server {
		return NewServer(p.Config, p.Service, p.Metrics, p.Checks, p.Logger)
	}),
	fx.Invoke(RegisterServerLifecycle),
)

func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.logger.Info("Starting HTTP server", nil, map[string]interface{}{
					"address": s.http.Addr,
				})
				if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.logger.Error("HTTP server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("Shutting down HTTP server", nil, nil)
			if s.cfg.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
				defer cancel()
			}
			err := s.http.Shutdown(ctx)
			wg.Wait()
			return err
		},
	})
}

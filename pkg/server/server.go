package server

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/service"
	"github.com/gin-gonic/gin"
)

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// JobService is what the handlers need from the service layer.
// *service.JobOpenings implements it.
//
//go:generate mockgen -source=server.go -destination=mock_job_service.go -package=server
type JobService interface {
	Get(ctx context.Context, id string) (*jobs.StoredDocument, error)
	List(ctx context.Context) ([]jobs.ListedDocument, error)
	Search(ctx context.Context, text string, k int) ([]pipeline.Match, error)
	Create(ctx context.Context, doc jobs.JobOpening) (*service.CreateResult, error)
	Delete(ctx context.Context, id string) error
}

// HealthCheck is one dependency probed by GET /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server is the HTTP surface of the service.
type Server struct {
	cfg    Config
	engine *gin.Engine
	http   *http.Server
	svc    JobService
	checks []HealthCheck
	logger Logger
}

func NewServer(cfg Config, svc JobService, m *metrics.Metrics, checks []HealthCheck, logger Logger) *Server {
	if cfg.QueryTopK <= 0 {
		cfg.QueryTopK = DefaultQueryTopK
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		svc:    svc,
		checks: checks,
		logger: logger,
	}

	s.engine.Use(
		recoveryMiddleware(logger),
		loggerMiddleware(logger),
		m.GinMiddleware(),
		timeoutMiddleware(cfg.RequestTimeout),
		bodySizeLimiter(cfg.MaxBodyBytes),
	)
	s.engine.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found")
	})
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)

	g := s.engine.Group("/job-openings")
	g.GET("", s.getJobOpenings)
	g.POST("", s.createJobOpening)
	g.DELETE("", s.deleteJobOpening)
	g.GET("/schema", s.schema)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Addr() string {
	return s.http.Addr
}

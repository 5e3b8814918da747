package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated registry and the collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	indexDuration   *prometheus.HistogramVec
	indexedChunks   prometheus.Counter
	queryDuration   *prometheus.HistogramVec
	queryResults    prometheus.Histogram
	deleteDuration  *prometheus.HistogramVec
	embedDuration   *prometheus.HistogramVec
	embeddedTexts   prometheus.Counter
	eventsPublished *prometheus.CounterVec
	documentsStored prometheus.Gauge
}

func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	ns := cfg.Namespace

	m := &Metrics{
		Registry: registry,

		httpRequestsTotal: createCounterVec(ns, "http_requests_total",
			"Total number of HTTP requests", []string{"method", "route", "status"}),
		httpRequestDuration: createHistogramVec(ns, "http_request_duration_seconds",
			"Duration of HTTP requests in seconds", []string{"method", "route"}, prometheus.DefBuckets),

		indexDuration: createHistogramVec(ns, "index_duration_seconds",
			"Duration of the index pipeline in seconds", []string{"outcome"}, prometheus.DefBuckets),
		indexedChunks: createCounter(ns, "indexed_chunks_total",
			"Total number of chunks written to the vector index"),
		queryDuration: createHistogramVec(ns, "query_duration_seconds",
			"Duration of the query pipeline in seconds", []string{"outcome"}, prometheus.DefBuckets),
		queryResults: createHistogram(ns, "query_results",
			"Number of matches returned per query", []float64{0, 1, 2, 3, 5, 10, 20, 50}),
		deleteDuration: createHistogramVec(ns, "delete_duration_seconds",
			"Duration of the delete pipeline in seconds", []string{"outcome"}, prometheus.DefBuckets),
		embedDuration: createHistogramVec(ns, "embedding_duration_seconds",
			"Duration of embedding requests in seconds", []string{"outcome"}, prometheus.DefBuckets),
		embeddedTexts: createCounter(ns, "embedded_texts_total",
			"Total number of texts sent for embedding"),
		eventsPublished: createCounterVec(ns, "events_published_total",
			"Total number of domain events published", []string{"event", "outcome"}),
		documentsStored: createGauge(ns, "documents_stored",
			"Number of job openings in the document store at last listing"),
	}

	wrappedRegistry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.indexDuration,
		m.indexedChunks,
		m.queryDuration,
		m.queryResults,
		m.deleteDuration,
		m.embedDuration,
		m.embeddedTexts,
		m.eventsPublished,
		m.documentsStored,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}

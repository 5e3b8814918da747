package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveHTTPRequest records one finished request. route is the matched
// route template, not the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveIndex(chunks int, start time.Time, err error) {
	if m == nil {
		return
	}
	m.indexDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	if err == nil {
		m.indexedChunks.Add(float64(chunks))
	}
}

func (m *Metrics) ObserveQuery(results int, start time.Time, err error) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	if err == nil {
		m.queryResults.Observe(float64(results))
	}
}

func (m *Metrics) ObserveDelete(start time.Time, err error) {
	if m == nil {
		return
	}
	m.deleteDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveEmbedding(texts int, start time.Time, err error) {
	if m == nil {
		return
	}
	m.embedDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	m.embeddedTexts.Add(float64(texts))
}

func (m *Metrics) ObserveEvent(event string, err error) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event, outcome(err)).Inc()
}

func (m *Metrics) SetDocumentsStored(n int) {
	if m == nil {
		return
	}
	m.documentsStored.Set(float64(n))
}

func createCounter(namespace, name, help string) prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
	)
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogram(namespace, name, help string, buckets []float64) prometheus.Histogram {
	return prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func createGauge(namespace, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
	)
}

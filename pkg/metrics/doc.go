// Package metrics exposes Prometheus metrics for the job openings service.
//
// NewMetrics creates an isolated registry in which every collector carries
// a constant service label. Besides the optional Go runtime and process
// collectors it registers the domain collectors:
//
//   - http_requests_total, http_request_duration_seconds (via GinMiddleware)
//   - index_duration_seconds, indexed_chunks_total
//   - query_duration_seconds, query_results
//   - delete_duration_seconds
//   - embedding_duration_seconds, embedded_texts_total
//   - events_published_total
//   - documents_stored
//
// The registry is served on Config.Address under /metrics by a dedicated
// http.Server whose lifecycle FXModule manages.
//
// Every Observe method is a no-op on a nil *Metrics, so components can be
// constructed without metrics in tests.
package metrics

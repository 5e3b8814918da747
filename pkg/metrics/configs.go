package metrics

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines how the Prometheus metrics server is exposed.
type Config struct {
	// Address is where the metrics HTTP server listens, e.g. ":9090".
	Address string `koanf:"address"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `koanf:"enable_default_collectors"`

	// Namespace prefixes every metric name, e.g. "jobrag" gives
	// "jobrag_http_requests_total".
	Namespace string `koanf:"namespace"`

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string `koanf:"service_name"`
}

func DefaultConfig() Config {
	return Config{
		Address:                 DefaultMetricsAddress,
		EnableDefaultCollectors: true,
		Namespace:               "jobrag",
		ServiceName:             "job-openings-rag",
	}
}

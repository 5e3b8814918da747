package tracer

// Config controls the trace provider. When EnableExport is false spans are
// still created and propagated but never leave the process.
type Config struct {
	ServiceName  string `koanf:"service_name"`
	AppEnv       string `koanf:"app_env"`
	EnableExport bool   `koanf:"enable_export"`

	// Endpoint is the OTLP/HTTP collector address (host:port). Empty falls
	// back to the OTEL_EXPORTER_OTLP_* environment variables.
	Endpoint string `koanf:"endpoint"`
	Insecure bool   `koanf:"insecure"`

	// SampleRatio is the fraction of root spans sampled, between 0 and 1.
	SampleRatio float64 `koanf:"sample_ratio" validate:"gte=0,lte=1"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "job-openings-rag",
		AppEnv:      "development",
		SampleRatio: 1,
	}
}

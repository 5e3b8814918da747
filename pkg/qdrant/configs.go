package qdrant

import (
	"time"
)

// Config holds connection settings for the Qdrant gRPC API.
type Config struct {
	// Endpoint is the Qdrant host, without scheme or port.
	Endpoint string `koanf:"endpoint"`

	// Port is the gRPC port. Default: 6334.
	Port int `koanf:"port"`

	ApiKey string `koanf:"api_key"`

	// UseTLS enables TLS on the gRPC connection (Qdrant Cloud).
	UseTLS bool `koanf:"use_tls"`

	// Timeout bounds the startup health check.
	Timeout time.Duration `koanf:"timeout"`

	// UpsertBatchSize caps the number of points per Upsert request.
	UpsertBatchSize int `koanf:"upsert_batch_size"`

	CheckCompatibility bool `koanf:"check_compatibility"`
}

// DefaultConfig returns a Config for a local Qdrant instance.
func DefaultConfig() Config {
	return Config{
		Endpoint:           "localhost",
		Port:               6334,
		Timeout:            5 * time.Second,
		UpsertBatchSize:    defaultBatchSize,
		CheckCompatibility: true,
	}
}

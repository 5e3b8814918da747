package kafka

import "time"

const (
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
)

// Config configures the Kafka producer.
type Config struct {
	Brokers []string `koanf:"brokers" validate:"required_with=Topic"`
	Topic   string   `koanf:"topic"`

	// RequiredAcks is -1 (all), 0 (none) or 1 (leader).
	RequiredAcks int           `koanf:"required_acks" validate:"oneof=-1 0 1"`
	MaxAttempts  int           `koanf:"max_attempts"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// CompressionCodec is one of gzip, snappy, lz4 or zstd. Empty disables compression.
	CompressionCodec string `koanf:"compression_codec" validate:"omitempty,oneof=gzip snappy lz4 zstd"`

	TLS  TLSConfig  `koanf:"tls"`
	SASL SASLConfig `koanf:"sasl"`
}

type TLSConfig struct {
	Enabled            bool   `koanf:"enabled"`
	CACertPath         string `koanf:"ca_cert_path"`
	ClientCertPath     string `koanf:"client_cert_path"`
	ClientKeyPath      string `koanf:"client_key_path"`
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify"`
}

type SASLConfig struct {
	Enabled bool `koanf:"enabled"`
	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
	Mechanism string `koanf:"mechanism"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
}

func DefaultConfig() Config {
	return Config{
		Brokers:      []string{"localhost:9092"},
		Topic:        "job-openings",
		RequiredAcks: -1,
		MaxAttempts:  DefaultMaxAttempts,
		WriteTimeout: DefaultWriteTimeout,
	}
}

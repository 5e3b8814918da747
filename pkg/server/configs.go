package server

import "time"

const (
	DefaultAddress      = ":8080"
	DefaultQueryTopK    = 3
	DefaultMaxBodyBytes = 1 << 20
)

type Config struct {
	Address string `koanf:"address"`

	// Mode is the gin mode: debug, release or test.
	Mode string `koanf:"mode" validate:"omitempty,oneof=debug release test"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds the context of every request, including the
	// calls to the embedding service and the vector store.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gte=0"`

	// QueryTopK is the number of documents returned for ?jobQuery=.
	QueryTopK int `koanf:"query_top_k" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		Address:         DefaultAddress,
		Mode:            "release",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    90 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  60 * time.Second,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		QueryTopK:       DefaultQueryTopK,
	}
}

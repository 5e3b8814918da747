package config

import (
	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/chunker"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/embedding"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/kafka"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/minio"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pgvector"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/qdrant"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/rabbit"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/server"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/tracer"
)

const (
	VectorBackendQdrant   = "qdrant"
	VectorBackendPgvector = "pgvector"
	VectorBackendMemory   = "memory"
)

// Vector selects the vector index backend.
type Vector struct {
	Backend string `koanf:"backend" validate:"oneof=qdrant pgvector memory"`
}

// Config is the complete configuration of the service. Every section is the
// Config type of the package it configures.
type Config struct {
	Logger    logger.Config    `koanf:"logger"`
	Metrics   metrics.Config   `koanf:"metrics"`
	Tracer    tracer.Config    `koanf:"tracer"`
	Server    server.Config    `koanf:"server"`
	Pipeline  pipeline.Config  `koanf:"pipeline"`
	Chunker   chunker.Config   `koanf:"chunker"`
	Embedding embedding.Config `koanf:"embedding"`
	Vector    Vector           `koanf:"vector"`
	Qdrant    qdrant.Config    `koanf:"qdrant"`
	Postgres  postgres.Config  `koanf:"postgres"`
	Pgvector  pgvector.Config  `koanf:"pgvector"`
	Docstore  docstore.Config  `koanf:"docstore"`
	Minio     minio.Config     `koanf:"minio"`
	Agent     agent.Config     `koanf:"agent"`
	Events    events.Config    `koanf:"events"`
	Kafka     kafka.Config     `koanf:"kafka"`
	Rabbit    rabbit.Config    `koanf:"rabbit"`
}

// Default returns a configuration that runs locally against Ollama with the
// in-memory vector index and the file document store.
func Default() Config {
	return Config{
		Logger:    logger.Config{Level: logger.Info, ServiceName: "job-openings-rag"},
		Metrics:   metrics.DefaultConfig(),
		Tracer:    tracer.DefaultConfig(),
		Server:    server.DefaultConfig(),
		Pipeline:  pipeline.DefaultConfig(),
		Chunker:   chunker.DefaultConfig(),
		Embedding: embedding.DefaultConfig(),
		Vector:    Vector{Backend: VectorBackendMemory},
		Qdrant:    qdrant.DefaultConfig(),
		Postgres:  postgres.DefaultConfig(),
		Pgvector:  pgvector.DefaultConfig(),
		Docstore:  docstore.DefaultConfig(),
		Minio:     minio.DefaultConfig(),
		Agent:     agent.DefaultConfig(),
		Events:    events.DefaultConfig(),
		Kafka:     kafka.DefaultConfig(),
		Rabbit:    rabbit.DefaultConfig(),
	}
}

// UsesPostgres reports whether any selected backend needs the shared
// PostgreSQL connection.
func (c Config) UsesPostgres() bool {
	return c.Vector.Backend == VectorBackendPgvector || c.Docstore.Backend == docstore.BackendPostgres
}

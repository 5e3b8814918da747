package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Chunker, cfg.Chunker)
	assert.Equal(t, def.Pipeline, cfg.Pipeline)
	assert.Equal(t, def.Kafka.Brokers, cfg.Kafka.Brokers)
	assert.Equal(t, VectorBackendMemory, cfg.Vector.Backend)
	assert.Equal(t, server.DefaultQueryTopK, cfg.Server.QueryTopK)
	assert.False(t, cfg.UsesPostgres())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
vector:
  backend: qdrant
server:
  address: ":9000"
  request_timeout: 5s
chunker:
  max_size: 300
  overlap: 30
kafka:
  brokers: ["k1:9092"]
`)
	t.Setenv("JOBRAG_SERVER_ADDRESS", ":7000")
	t.Setenv("JOBRAG_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("JOBRAG_DOCSTORE_BACKEND", docstore.BackendPostgres)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, VectorBackendQdrant, cfg.Vector.Backend)
	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 300, cfg.Chunker.MaxSize)
	assert.Equal(t, 30, cfg.Chunker.Overlap)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.UsesPostgres())

	// untouched sections keep their defaults
	assert.Equal(t, Default().Embedding, cfg.Embedding)
}

func TestLoadFileFromEnvironment(t *testing.T) {
	path := writeFile(t, "pipeline:\n  candidate_k: 40\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Pipeline.CandidateK)
}

func TestLoadIgnoresUnknownEnvironment(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("JOBRAG_NOT_A_SETTING", "x")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeFile(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown vector backend", map[string]string{"JOBRAG_VECTOR_BACKEND": "faiss"}},
		{"unknown docstore backend", map[string]string{"JOBRAG_DOCSTORE_BACKEND": "s3"}},
		{"overlap not smaller than chunk", map[string]string{"JOBRAG_CHUNKER_OVERLAP": "600"}},
		{"top k above candidates", map[string]string{"JOBRAG_SERVER_QUERY_TOP_K": "50"}},
		{"sample ratio above one", map[string]string{"JOBRAG_TRACER_SAMPLE_RATIO": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestEnvMappings(t *testing.T) {
	m := envMappings([]string{"postgres.connection.host", "server.query_top_k"})
	assert.Equal(t, "postgres.connection.host", m["JOBRAG_POSTGRES_CONNECTION_HOST"])
	assert.Equal(t, "server.query_top_k", m["JOBRAG_SERVER_QUERY_TOP_K"])
}

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/config"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppGraphIsCompleteForEveryBackend(t *testing.T) {
	tests := []struct {
		vector, store, events string
	}{
		{config.VectorBackendMemory, docstore.BackendFile, events.BackendNoop},
		{config.VectorBackendQdrant, docstore.BackendMinio, events.BackendKafka},
		{config.VectorBackendPgvector, docstore.BackendPostgres, events.BackendRabbit},
		{config.VectorBackendPgvector, docstore.BackendFile, events.BackendNoop},
		{config.VectorBackendMemory, docstore.BackendPostgres, events.BackendKafka},
	}

	for _, tt := range tests {
		t.Run(tt.vector+"/"+tt.store+"/"+tt.events, func(t *testing.T) {
			cfg := config.Default()
			cfg.Vector.Backend = tt.vector
			cfg.Docstore.Backend = tt.store
			cfg.Events.Backend = tt.events

			assert.NoError(t, fx.ValidateApp(appOptions(&cfg)))
		})
	}
}

func TestSchemaCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"schema"})

	require.NoError(t, cmd.Execute())

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Equal(t, "JobOpening", schema["title"])
}

func TestCheckConfigCommand(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("JOBRAG_VECTOR_BACKEND", config.VectorBackendQdrant)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check-config"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vector backend:   qdrant")
}

func TestCheckConfigRejectsInvalidConfiguration(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("JOBRAG_VECTOR_BACKEND", "faiss")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check-config"})

	assert.Error(t, cmd.Execute())
}

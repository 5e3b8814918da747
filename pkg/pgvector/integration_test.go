package pgvector

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPgvectorContainer starts PostgreSQL with the pgvector extension available.
func setupPgvectorContainer(ctx context.Context) (testcontainers.Container, postgres.Config, error) {
	req := testcontainers.ContainerRequest{
		Image: "pgvector/pgvector:pg16",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, postgres.Config{}, fmt.Errorf("failed to start pgvector container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, postgres.Config{}, fmt.Errorf("failed to get host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, postgres.Config{}, fmt.Errorf("failed to get mapped port: %w", err)
	}

	cfg := postgres.DefaultConfig()
	cfg.Connection = postgres.Connection{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		DbName:   "testdb",
		SSLMode:  "disable",
	}
	return c, cfg, nil
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func axis(dim, hot int) []float32 {
	v := make([]float32, dim)
	v[hot%dim] = 1
	return v
}

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	c, pgCfg, err := setupPgvectorContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := c.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	log := logger.NewNopLogger()
	db, err := postgres.NewPostgres(pgCfg, log)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store, err := NewStore(ctx, db, DefaultConfig(), log)
	require.NoError(t, err)

	const dim = 4

	t.Run("CreateIndex", func(t *testing.T) {
		created, err := vectordb.EnsureIndex(ctx, store, "jobs", dim)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = vectordb.EnsureIndex(ctx, store, "jobs", dim)
		require.NoError(t, err)
		assert.False(t, created)

		assert.ErrorIs(t, store.CreateIndex(ctx, "jobs", dim), vectordb.ErrIndexExists)

		names, err := store.ListIndexes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"jobs"}, names)
	})

	t.Run("UpsertQueryDelete", func(t *testing.T) {
		payloads := []map[string]any{
			{vectordb.PayloadText: "go", vectordb.PayloadSourceHash: "h1", vectordb.PayloadChunkIndex: 0, "location": "Remote"},
			{vectordb.PayloadText: "sql", vectordb.PayloadSourceHash: "h1", vectordb.PayloadChunkIndex: 1, "location": "Remote"},
			{vectordb.PayloadText: "design", vectordb.PayloadSourceHash: "h2", vectordb.PayloadChunkIndex: 0, "location": "Berlin"},
		}
		vectors := [][]float32{axis(dim, 0), axis(dim, 1), axis(dim, 2)}

		res, err := store.Upsert(ctx, "jobs", vectors, payloads)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Upserted)

		again, err := store.Upsert(ctx, "jobs", vectors, payloads)
		require.NoError(t, err)
		assert.Equal(t, res.IDs, again.IDs)

		info, err := store.Info(ctx, "jobs")
		require.NoError(t, err)
		assert.Equal(t, 3, info.Count)
		assert.Equal(t, dim, info.Dimension)

		hits, err := store.Query(ctx, "jobs", axis(dim, 1), 2, nil)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, res.IDs[1], hits[0].ID)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
		assert.Equal(t, "sql", hits[0].Payload[vectordb.PayloadText])
		assert.Equal(t, float64(1), hits[0].Payload[vectordb.PayloadChunkIndex])

		berlin, err := store.Query(ctx, "jobs", axis(dim, 0), 5,
			vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("location", "Berlin"))))
		require.NoError(t, err)
		require.Len(t, berlin, 1)
		assert.Equal(t, "design", berlin[0].Payload[vectordb.PayloadText])

		del, err := store.Delete(ctx, "jobs", vectordb.BySourceHash("h1"))
		require.NoError(t, err)
		assert.Equal(t, 2, del.Deleted)

		del, err = store.Delete(ctx, "jobs", vectordb.BySourceHash("h1"))
		require.NoError(t, err)
		assert.Zero(t, del.Deleted)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := store.Query(ctx, "missing", axis(dim, 0), 1, nil)
		assert.ErrorIs(t, err, vectordb.ErrIndexNotFound)

		_, err = store.Query(ctx, "jobs", axis(dim+1, 0), 1, nil)
		assert.ErrorIs(t, err, vectordb.ErrVectorStore)

		_, err = store.Upsert(ctx, "jobs", [][]float32{axis(2, 0)}, []map[string]any{{"text": "x"}})
		assert.ErrorIs(t, err, vectordb.ErrVectorStore)

		_, err = store.Delete(ctx, "jobs", nil)
		assert.ErrorIs(t, err, vectordb.ErrVectorStore)
	})
}

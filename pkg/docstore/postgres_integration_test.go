package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, postgres.Config, error) {
	req := testcontainers.ContainerRequest{
		Image: "postgres:16",
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
		return nil, postgres.Config{}, fmt.Errorf("failed to start postgres container: %w", err)
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

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	c, cfg, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := c.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	log := logger.NewNopLogger()
	db, err := postgres.NewPostgres(cfg, log)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store, err := NewPostgresStore(db, log)
	require.NoError(t, err)
	// one row per page so listing has to follow the keyset across queries
	store.pageSize = 1

	contract(t, store)

	t.Run("lists every page", func(t *testing.T) {
		for _, id := range []string{"ccc", "ddd", "eee"} {
			require.NoError(t, store.Put(ctx, sampleDoc(id, "Engineer")))
		}
		docs, err := store.List(ctx)
		require.NoError(t, err)
		ids := make([]string, len(docs))
		for i, d := range docs {
			ids[i] = d.ID
		}
		assert.Equal(t, []string{"bbb", "ccc", "ddd", "eee"}, ids)
	})
}

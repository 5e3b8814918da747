package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// testOpening is a sample model for exercising the GORM operations.
type testOpening struct {
	ID       string `gorm:"primaryKey"`
	Position string
	Location string
	Keywords pq.StringArray `gorm:"type:text[]"`
}

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	ConnectionString string
	Config           Config
	Host             string
	Port             string
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	// Get a random free port
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	// Define container request
	req := testcontainers.ContainerRequest{
		Image: "postgres:16",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	// Start container
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Get host
	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	// Double-check port mapping (could be different from requested)
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	// Update port to actual mapped port
	portStr = mappedPort.Port()

	err = waitForPostgresReady(host, portStr, "testuser", "testpass", "testdb", 30*time.Second)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}

	// Create connection config
	config := Config{
		Connection: Connection{
			Host:     host,
			Port:     portStr,
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
	}

	return &PostgresContainer{
		Container:        container,
		ConnectionString: fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable", host, portStr),
		Config:           config,
		Host:             host,
		Port:             portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func(addr net.Listener) {
		err := addr.Close()
		if err != nil {
			fmt.Printf("Failed to close listener: %v", err)
		}
	}(addr)

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// TestMain sets up the testing environment
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func newQuietLogger(t *testing.T) *MockLogger {
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return mockLogger
}

// TestPostgresOperations exercises the wrapper against a real PostgreSQL.
func TestPostgresOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using PostgreSQL on %s:%s", pgContainer.Host, pgContainer.Port)

	postgres, err := NewPostgres(pgContainer.Config, newQuietLogger(t))
	require.NoError(t, err)
	defer func() { _ = postgres.Close() }()

	require.NoError(t, postgres.Migrate(&testOpening{}))

	t.Run("UpsertFirstFind", func(t *testing.T) {
		doc := testOpening{ID: "a", Position: "Engineer", Location: "Remote", Keywords: pq.StringArray{"go", "sql"}}
		require.NoError(t, postgres.Upsert(ctx, &doc))

		doc.Location = "Berlin"
		require.NoError(t, postgres.Upsert(ctx, &doc))

		var got testOpening
		require.NoError(t, postgres.First(ctx, &got, "id = ?", "a"))
		assert.Equal(t, "Berlin", got.Location)
		assert.Equal(t, pq.StringArray{"go", "sql"}, got.Keywords)

		require.NoError(t, postgres.Upsert(ctx, &testOpening{ID: "b", Position: "Designer", Location: "Remote"}))

		var remote []testOpening
		require.NoError(t, postgres.Query(ctx).Where("location = ?", "Remote").Order("id").Find(&remote))
		require.Len(t, remote, 1)
		assert.Equal(t, "b", remote[0].ID)

		var ids []string
		require.NoError(t, postgres.Query(ctx).Model(&testOpening{}).Order("id").Pluck("id", &ids))
		assert.Equal(t, []string{"a", "b"}, ids)

		var page []testOpening
		require.NoError(t, postgres.Query(ctx).Where("id > ?", "a").Order("id").Limit(1).Find(&page))
		require.Len(t, page, 1)
		assert.Equal(t, "b", page[0].ID)

		var count int64
		require.NoError(t, postgres.Query(ctx).Raw("SELECT COUNT(*) FROM test_openings").Scan(&count))
		assert.Equal(t, int64(2), count)
	})

	t.Run("Delete", func(t *testing.T) {
		n, err := postgres.Delete(ctx, &testOpening{}, "id = ?", "a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = postgres.Delete(ctx, &testOpening{}, "id = ?", "a")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("ErrorTranslation", func(t *testing.T) {
		var got testOpening
		err := postgres.First(ctx, &got, "id = ?", "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)

		_, err = postgres.Exec(ctx, `INSERT INTO test_openings (id, position) VALUES ('b', 'dup')`)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("Transaction", func(t *testing.T) {
		err := postgres.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(&testOpening{ID: "c", Position: "PM"}).Error; err != nil {
				return err
			}
			return fmt.Errorf("abort")
		})
		require.Error(t, err)

		var count int64
		require.NoError(t, postgres.Query(ctx).Raw("SELECT COUNT(*) FROM test_openings WHERE id = ?", "c").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("RetryConnection", func(t *testing.T) {
		rctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			postgres.RetryConnection(rctx, postgres.logger)
			close(done)
		}()

		postgres.retryChanSignal <- fmt.Errorf("test connection error")
		time.Sleep(500 * time.Millisecond)

		var result int
		require.NoError(t, postgres.Query(ctx).Raw("SELECT 1").Scan(&result))
		assert.Equal(t, 1, result)

		cancel()
		<-done
	})
}

// TestPostgresWithFXModule checks the fx wiring starts and stops cleanly.
func TestPostgresWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var postgres *Postgres
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return pgContainer.Config },
			func() Logger { return newQuietLogger(t) },
			NewPostgres,
		),
		fx.Invoke(RegisterPostgresLifecycle),
		fx.Populate(&postgres),
	)
	app.RequireStart()
	require.NotNil(t, postgres)
	require.NoError(t, postgres.healthCheck())
	app.RequireStop()
}

func TestTranslateError(t *testing.T) {
	t.Run("Sentinels", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))

		err := TranslateError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey), ErrDuplicateKey)
		assert.ErrorIs(t, TranslateError(gorm.ErrForeignKeyViolated), ErrForeignKey)
	})

	t.Run("Passthrough", func(t *testing.T) {
		customErr := fmt.Errorf("custom error")
		assert.Equal(t, customErr, TranslateError(customErr))
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection.Password = "secret"
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=job_openings sslmode=disable",
		cfg.dsn())
}

// waitForPostgresReady attempts to connect to PostgreSQL until it's ready or times out
func waitForPostgresReady(host, port, user, password, dbname string, timeout time.Duration) error {
	// Use standard PostgreSQL connection string
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for PostgreSQL to be ready after %s", timeout)
		}

		// Try to establish a connection
		db, err := sql.Open("postgres", connStr) // lib/pq driver
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		// Try a simple ping
		err = db.Ping()
		if err == nil {
			// Close the connection and return success
			err = db.Close()
			if err != nil {
				return fmt.Errorf("error closing database connection: %w", err)
			}
			return nil
		}

		// Close the connection even if ping failed
		_ = db.Close()
		time.Sleep(500 * time.Millisecond)
	}
}

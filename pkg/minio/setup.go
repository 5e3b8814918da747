package minio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger defines the interface for logging operations within the MinIO client.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=minio
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Minio stores objects in one bucket. The underlying client is replaced by
// Watch when the bucket stops answering.
type Minio struct {
	cfg    Config
	logger Logger

	mu     sync.RWMutex
	client *minio.Client

	closeOnce      sync.Once
	shutdownSignal chan struct{}
}

// NewClient connects to MinIO and makes sure the configured bucket exists.
//
// Example:
//
//	client, err := minio.NewClient(cfg, log)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize MinIO client: %w", err)
//	}
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	if cfg.Connection.BucketName == "" {
		return nil, errors.New("minio bucket name cannot be empty")
	}

	client, err := connectToMinio(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to minio", err, connectionFields(cfg))
		return nil, err
	}

	m := &Minio{
		cfg:            cfg,
		logger:         logger,
		client:         client,
		shutdownSignal: make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.ensureBucket(ctx, client); err != nil {
		logger.Error("failed to verify bucket", err, connectionFields(cfg))
		return nil, err
	}

	return m, nil
}

// Ping checks that the bucket is reachable with the current credentials.
func (m *Minio) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ok, err := m.current().BucketExists(ctx, m.cfg.Connection.BucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", m.cfg.Connection.BucketName)
	}
	return nil
}

// Watch pings the bucket every HealthCheckInterval and rebuilds the client
// after a failed ping, retrying once per second until it succeeds. It
// returns when ctx is done or Close is called.
func (m *Minio) Watch(ctx context.Context) {
	interval := m.cfg.HealthCheckInterval
	if interval <= 0 {
		interval = DefaultHealthCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			m.logger.Info("Stopping MinIO watcher due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := m.Ping(ctx); err != nil {
			m.logger.Warn("MinIO health check failed, reconnecting", err, map[string]interface{}{
				"endpoint": m.cfg.Connection.Endpoint,
			})
			if !m.reconnect(ctx) {
				return
			}
		}
	}
}

// reconnect loops until a fresh client can see the bucket. It reports false
// when interrupted by shutdown.
func (m *Minio) reconnect(ctx context.Context) bool {
	for {
		select {
		case <-m.shutdownSignal:
			return false
		case <-ctx.Done():
			return false
		default:
		}

		client, err := connectToMinio(m.cfg, m.logger)
		if err == nil {
			attemptCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = m.ensureBucket(attemptCtx, client)
			cancel()
		}
		if err != nil {
			m.logger.Error("MinIO reconnection failed", err, map[string]interface{}{
				"endpoint":      m.cfg.Connection.Endpoint,
				"will_retry_in": "1 second",
			})
			time.Sleep(time.Second)
			continue
		}

		m.mu.Lock()
		m.client = client
		m.mu.Unlock()

		m.logger.Info("Successfully reconnected to MinIO", nil, connectionFields(m.cfg))
		return true
	}
}

// Close stops Watch. It is safe to call more than once.
func (m *Minio) Close() {
	m.closeOnce.Do(func() {
		m.logger.Info("closing minio client...", nil, nil)
		close(m.shutdownSignal)
	})
}

func connectToMinio(cfg Config, logger Logger) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, errors.New("minio endpoint cannot be empty")
	}

	logger.Info("Connecting to MinIO", nil, connectionFields(cfg))

	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
}

// ensureBucket creates the configured bucket on first use.
func (m *Minio) ensureBucket(ctx context.Context, client *minio.Client) error {
	bucket := m.cfg.Connection.BucketName

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}

	m.logger.Info("Bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": bucket,
		"region": m.cfg.Connection.Region,
	})
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.cfg.Connection.Region}); err != nil {
		// another replica may have won the race
		if resp := minio.ToErrorResponse(err); resp.Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return err
	}
	return nil
}

func (m *Minio) current() *minio.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func connectionFields(cfg Config) map[string]interface{} {
	return map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"region":   cfg.Connection.Region,
		"secure":   cfg.Connection.UseSSL,
		"bucket":   cfg.Connection.BucketName,
	}
}

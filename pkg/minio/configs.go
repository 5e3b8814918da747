package minio

import "time"

const (
	unknownSize          int64  = -1
	minPartSizeForUpload uint64 = 5 * 1024 * 1024

	DefaultHealthCheckInterval = 5 * time.Second
	DefaultMaxObjectSize       = 4 * 1024 * 1024
)

// Config defines the top-level configuration for MinIO.
type Config struct {
	Connection ConnectionConfig `koanf:"connection"`

	// MinPartSize is the part size for multipart uploads.
	MinPartSize uint64 `koanf:"min_part_size"`

	// MaxObjectSize caps what Get reads. Stored documents are small JSON
	// objects, so anything larger is treated as corrupt.
	MaxObjectSize int64 `koanf:"max_object_size"`

	// HealthCheckInterval is how often the watcher pings the bucket.
	HealthCheckInterval time.Duration `koanf:"health_check_interval"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `koanf:"endpoint"` // e.g. "localhost:9000"
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	UseSSL          bool   `koanf:"use_ssl"`
	BucketName      string `koanf:"bucket_name"`
	Region          string `koanf:"region"`
}

// DefaultConfig returns settings for a local MinIO.
func DefaultConfig() Config {
	return Config{
		Connection: ConnectionConfig{
			Endpoint:   "localhost:9000",
			BucketName: "job-openings",
			Region:     "us-east-1",
		},
		MinPartSize:         minPartSizeForUpload,
		MaxObjectSize:       DefaultMaxObjectSize,
		HealthCheckInterval: DefaultHealthCheckInterval,
	}
}

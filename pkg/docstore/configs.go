package docstore

const (
	BackendFile     = "file"
	BackendMinio    = "minio"
	BackendPostgres = "postgres"
)

// Config selects and configures the document store backend.
type Config struct {
	Backend string `koanf:"backend" validate:"oneof=file minio postgres"`

	// Dir is the directory of the file backend.
	Dir string `koanf:"dir"`

	// Prefix is the object key prefix of the minio backend.
	Prefix string `koanf:"prefix"`

	// ListConcurrency bounds parallel reads while listing.
	ListConcurrency int `koanf:"list_concurrency" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		Backend:         BackendFile,
		Dir:             "data/job-openings",
		Prefix:          "job-openings/",
		ListConcurrency: 8,
	}
}

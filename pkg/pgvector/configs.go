package pgvector

// Approximate nearest neighbour index types.
const (
	IndexTypeHNSW    = "hnsw"
	IndexTypeIVFFlat = "ivfflat"
	IndexTypeNone    = "none"
)

// Config controls how vector indexes are laid out in PostgreSQL.
type Config struct {
	// TablePrefix is prepended to each index name to form its table name.
	TablePrefix string `koanf:"table_prefix" validate:"omitempty,max=20"`

	// IndexType selects the ANN index built on the embedding column.
	IndexType string `koanf:"index_type" validate:"omitempty,oneof=hnsw ivfflat none"`
}

// DefaultConfig returns an HNSW layout with a "vec_" prefix.
func DefaultConfig() Config {
	return Config{
		TablePrefix: "vec_",
		IndexType:   IndexTypeHNSW,
	}
}

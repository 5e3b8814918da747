package vectordb

import "context"

// Service is the backend-agnostic vector index API. Qdrant, pgvector and the
// in-memory store all implement it; one implementation is chosen at startup
// and injected wherever vectors are read or written.
//
//go:generate mockgen -source=interface.go -destination=mock_service.go -package=vectordb
type Service interface {
	// ListIndexes returns the names of all existing indexes.
	ListIndexes(ctx context.Context) ([]string, error)

	// CreateIndex creates an index for vectors of the given dimension. Creating
	// an index that already exists fails with ErrIndexExists; use EnsureIndex
	// for idempotent creation.
	CreateIndex(ctx context.Context, name string, dimension int) error

	// Upsert stores one record per vector with the payload at the same position.
	// len(vectors) must equal len(payloads).
	Upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any) (*UpsertResult, error)

	// Query returns at most topK records ordered by descending similarity.
	// filters may be nil.
	Query(ctx context.Context, index string, vector []float32, topK int, filters *FilterSet) ([]SearchResult, error)

	// Delete removes every record matching filters.
	Delete(ctx context.Context, index string, filters *FilterSet) (*DeleteResult, error)

	// Close releases the backend connection.
	Close() error
}

// Package vectordb defines the vector index API shared by every backend.
//
// The Service interface covers the operations the indexing and query pipelines
// need: list and create indexes, upsert vectors with payloads, query the nearest
// neighbours of a vector, and delete records matching a filter.
//
// Implementations:
//
//   - qdrant.Adapter       Qdrant over gRPC
//   - pgvector.Store       PostgreSQL with the pgvector extension
//   - vectordb.MemoryStore in-process brute force, for development and tests
//
// The backend is chosen once at startup and injected; call sites only ever see
// Service.
//
// Index creation:
//
// CreateIndex fails when the index exists. Call EnsureIndex instead, which
// consults ListIndexes first:
//
//	if _, err := vectordb.EnsureIndex(ctx, svc, "job-openings", 768); err != nil {
//	    return err
//	}
//
// Record identity:
//
// Upsert assigns each record a UUID derived from its payload (see RecordID).
// Chunk payloads carry source_hash and chunk_index, so indexing the same
// document again overwrites the same records instead of duplicating them.
// Payloads without those keys are keyed by content and batch position.
//
// Filters:
//
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("source_hash", hash)),
//	)
//	res, err := svc.Delete(ctx, "job-openings", filters)
//
// Errors:
//
// Every backend failure wraps ErrVectorStore, so callers can test a single
// sentinel with errors.Is. ErrIndexNotFound, ErrIndexExists and
// ErrLengthMismatch refine it.
package vectordb

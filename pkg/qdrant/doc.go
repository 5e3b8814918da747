// Package qdrant implements vectordb.Service on top of the Qdrant vector database.
//
// Each index is a Qdrant collection using cosine distance. CreateIndex also
// creates a keyword payload index on "source_hash" so that deletion by content
// hash stays cheap as the collection grows.
//
// Point IDs are deterministic UUIDs derived from the payload (see
// vectordb.RecordID), so re-indexing the same job opening overwrites its
// chunks instead of duplicating them.
//
// Basic Usage:
//
//	client, err := qdrant.NewQdrantClient(qdrant.Config{
//		Endpoint: "localhost",
//		Port:     6334,
//	}, log)
//	if err != nil {
//		return err
//	}
//	store := qdrant.NewAdapter(client)
//	defer store.Close()
//
//	hits, err := store.Query(ctx, "job_openings", vector, 5, nil)
//
// Payload values are returned as plain Go values: strings, bool, int64,
// float64, []any and map[string]any.
package qdrant

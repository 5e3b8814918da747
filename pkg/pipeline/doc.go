// Package pipeline implements indexing, semantic query and deletion of job
// openings on top of a vectordb.Service.
//
// Index: validate, hash, chunk, embed every chunk in a single request, make
// sure the index exists, then upsert one record per chunk. Each record's
// payload holds the chunk text, the document's content hash (source_hash),
// the chunk position (chunk_index) and the document fields.
//
// Query: embed the query text once and return the nearest chunks. Blank text
// short-circuits to an empty result. QueryDocuments collapses the hits to the
// best chunk per document.
//
// Delete: remove all records whose source_hash matches, with a single
// filtered delete on the backend.
//
// The pipelines keep no per-request state and never retry; errors from the
// embedding service and the vector store are returned wrapped.
package pipeline

// Package pgvector implements vectordb.Service on PostgreSQL with the
// pgvector extension.
//
// Every index gets its own table holding the embedding, the chunk text and
// the payload as JSONB. A catalog table, vector_indexes, records the name
// and dimension of each index so that ListIndexes and dimension checks do not
// depend on introspecting column types.
//
// Filters are pushed down as metadata ->> 'field' comparisons. Because JSONB
// numbers decode to float64, integer payload fields such as chunk_index come
// back from Query as float64.
package pgvector

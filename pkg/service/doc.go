// Package service coordinates the document store, the indexing pipelines,
// metadata enrichment and domain events for job openings.
//
// Writes go to the document store first and to the vector index second.
// There is no compensation when the second step fails; the error is
// returned and logged with the job id.
package service

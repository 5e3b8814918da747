// Package docstore persists stored job opening documents.
//
// Three backends implement Store: FileStore writes one JSON file per document
// into a directory, ObjectStore writes JSON objects to a MinIO bucket and
// PostgresStore keeps rows in a job_openings table. Documents are keyed by
// their content hash, so writing the same opening twice leaves one copy.
//
// Errors wrap ErrNotFound or ErrFileSystem.
package docstore

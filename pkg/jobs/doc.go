// Package jobs holds the job opening data model: the document accepted over HTTP,
// its validation rules, the content hash that identifies it everywhere, and the
// text and metadata derived from it.
//
// A document's identifier is its ContentHash, so posting the same document twice
// addresses the same stored file and the same vector records.
package jobs

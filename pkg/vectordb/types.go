package vectordb

// Payload keys written for every chunk record.
const (
	PayloadText       = "text"
	PayloadSourceHash = "source_hash"
	PayloadChunkIndex = "chunk_index"
)

// SearchResult is one ranked hit returned by Query.
type SearchResult struct {
	// ID is the record identifier assigned on upsert.
	ID string `json:"id"`

	// Score is the backend's similarity score. Higher is more similar;
	// for cosine distance it lies in [-1, 1].
	Score float32 `json:"score"`

	// Payload is the metadata stored with the vector.
	Payload map[string]any `json:"payload"`
}

// UpsertResult reports the outcome of an Upsert.
type UpsertResult struct {
	Upserted int      `json:"upserted"`
	IDs      []string `json:"ids"`
}

// DeleteResult reports the outcome of a Delete.
type DeleteResult struct {
	Deleted int `json:"deleted"`
}

// IndexInfo describes an index.
type IndexInfo struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Count     int    `json:"count"`
}

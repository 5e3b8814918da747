package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process Service with brute-force cosine search. It is
// meant for local development and tests; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	indexes map[string]*memoryIndex
}

type memoryIndex struct {
	dimension int
	records   map[string]*memoryRecord
	seq       int
}

type memoryRecord struct {
	id      string
	vector  []float32
	norm    float64
	payload map[string]any
	seq     int
}

var _ Service = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indexes: make(map[string]*memoryIndex)}
}

func (m *MemoryStore) ListIndexes(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.indexes))
	for name := range m.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) CreateIndex(_ context.Context, name string, dimension int) error {
	if name == "" {
		return fmt.Errorf("%w: index name cannot be empty", ErrVectorStore)
	}
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive", ErrVectorStore)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.indexes[name]; ok {
		return fmt.Errorf("%w: %s", ErrIndexExists, name)
	}
	m.indexes[name] = &memoryIndex{dimension: dimension, records: make(map[string]*memoryRecord)}
	return nil
}

func (m *MemoryStore) Upsert(_ context.Context, index string, vectors [][]float32, payloads []map[string]any) (*UpsertResult, error) {
	if err := ValidateUpsert(index, vectors, payloads); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.indexes[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, index %s expects %d", ErrVectorStore, i, len(v), index, idx.dimension)
		}
	}

	ids := make([]string, len(vectors))
	for i, v := range vectors {
		id := RecordID(payloads[i], i)
		ids[i] = id

		seq := idx.seq
		if existing, ok := idx.records[id]; ok {
			seq = existing.seq
		} else {
			idx.seq++
		}
		idx.records[id] = &memoryRecord{
			id:      id,
			vector:  append([]float32(nil), v...),
			norm:    norm(v),
			payload: ClonePayload(payloads[i]),
			seq:     seq,
		}
	}
	return &UpsertResult{Upserted: len(ids), IDs: ids}, nil
}

func (m *MemoryStore) Query(_ context.Context, index string, vector []float32, topK int, filters *FilterSet) ([]SearchResult, error) {
	if err := ValidateQuery(index, vector, topK); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indexes[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query dimension %d, index %s expects %d", ErrVectorStore, len(vector), index, idx.dimension)
	}

	qnorm := norm(vector)
	type scored struct {
		rec   *memoryRecord
		score float32
	}
	hits := make([]scored, 0, len(idx.records))
	for _, rec := range idx.records {
		if !filters.Matches(rec.payload) {
			continue
		}
		hits = append(hits, scored{rec: rec, score: cosine(vector, qnorm, rec.vector, rec.norm)})
	}

	// ties keep insertion order
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].rec.seq < hits[j].rec.seq
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	out := make([]SearchResult, len(hits))
	for i, h := range hits {
		out[i] = SearchResult{ID: h.rec.id, Score: h.score, Payload: ClonePayload(h.rec.payload)}
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, index string, filters *FilterSet) (*DeleteResult, error) {
	if filters.IsEmpty() {
		return nil, fmt.Errorf("%w: refusing to delete without a filter", ErrVectorStore)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.indexes[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}

	deleted := 0
	for id, rec := range idx.records {
		if filters.Matches(rec.payload) {
			delete(idx.records, id)
			deleted++
		}
	}
	return &DeleteResult{Deleted: deleted}, nil
}

// Info describes an index.
func (m *MemoryStore) Info(_ context.Context, index string) (*IndexInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indexes[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	return &IndexInfo{Name: index, Dimension: idx.dimension, Count: len(idx.records)}, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 when either vector has zero length.
func cosine(a []float32, na float64, b []float32, nb float64) float32 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot / (na * nb))
}

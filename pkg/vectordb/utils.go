package vectordb

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// recordNamespace scopes the deterministic record ids.
var recordNamespace = uuid.MustParse("6f2b4a8e-3c1d-5e7f-9a0b-1c2d3e4f5a6b")

// ── FilterSet Constructors ───────────────────────────────────────────────────

// NewFilterSet creates a FilterSet with the given clauses.
// Use with Must(), Should(), and MustNot() helpers.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("source_hash", hash)),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND logic) with the given conditions.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR logic) with the given conditions.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT logic) with the given conditions.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// NewMatch creates an equality condition.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny creates an IN condition.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

// BySourceHash selects every chunk record of one document.
func BySourceHash(hash string) *FilterSet {
	return NewFilterSet(Must(NewMatch(PayloadSourceHash, hash)))
}

// ── Helpers shared by backends ───────────────────────────────────────────────

// EnsureIndex creates the index only when ListIndexes does not report it, so it
// can be called before every write.
func EnsureIndex(ctx context.Context, svc Service, name string, dimension int) (created bool, err error) {
	names, err := svc.ListIndexes(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(names, name) {
		return false, nil
	}
	if err := svc.CreateIndex(ctx, name, dimension); err != nil {
		return false, err
	}
	return true, nil
}

// RecordID derives a stable UUID for the payload at position pos of an
// Upsert batch. Chunk payloads are keyed by source hash and chunk index, so
// re-indexing a document overwrites its records. Other payloads are keyed by
// their JSON encoding and batch position, so identical payloads in one batch
// stay distinct records.
func RecordID(payload map[string]any, pos int) string {
	hash, okHash := payload[PayloadSourceHash]
	idx, okIdx := payload[PayloadChunkIndex]
	if okHash && okIdx {
		return uuid.NewSHA1(recordNamespace, []byte(fmt.Sprintf("%v:%v", hash, idx))).String()
	}
	data, _ := json.Marshal(payload)
	return uuid.NewSHA1(recordNamespace, append([]byte(fmt.Sprintf("%d:", pos)), data...)).String()
}

// ValidateUpsert checks the arguments common to every backend's Upsert.
func ValidateUpsert(index string, vectors [][]float32, payloads []map[string]any) error {
	if index == "" {
		return fmt.Errorf("%w: index name cannot be empty", ErrVectorStore)
	}
	if len(vectors) != len(payloads) {
		return fmt.Errorf("%w: %d vectors, %d payloads", ErrLengthMismatch, len(vectors), len(payloads))
	}
	return nil
}

// ValidateQuery checks the arguments common to every backend's Query.
func ValidateQuery(index string, vector []float32, topK int) error {
	if index == "" {
		return fmt.Errorf("%w: index name cannot be empty", ErrVectorStore)
	}
	if len(vector) == 0 {
		return fmt.Errorf("%w: query vector cannot be empty", ErrVectorStore)
	}
	if topK <= 0 {
		return fmt.Errorf("%w: topK must be positive, got %d", ErrVectorStore, topK)
	}
	return nil
}

// ClonePayload returns a shallow copy so stored payloads are not aliased by callers.
func ClonePayload(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

// Match is one ranked chunk hit.
type Match struct {
	Score      float32        `json:"score"`
	SourceHash string         `json:"sourceHash"`
	ChunkIndex int            `json:"chunkIndex"`
	Text       string         `json:"text"`
	Payload    map[string]any `json:"payload"`
}

// Querier runs semantic search over the index.
type Querier struct {
	deps
	embedder Embedder
}

func NewQuerier(cfg Config, e Embedder, store vectordb.Service, logger Logger, opts ...Option) *Querier {
	return &Querier{deps: newDeps(cfg, store, logger, opts), embedder: e}
}

// Query returns at most topK chunk matches for text, best first. Blank text
// returns no matches without calling the embedding service. A missing index
// means nothing was indexed yet and also yields no matches.
func (q *Querier) Query(ctx context.Context, text string, topK int) (matches []Match, err error) {
	start := time.Now()
	ctx, span := q.tracer.StartSpan(ctx, "pipeline.query")
	defer func() {
		q.tracer.RecordErrorOnSpan(span, err)
		span.End()
		q.metrics.ObserveQuery(len(matches), start, err)
	}()

	if strings.TrimSpace(text) == "" || topK <= 0 {
		return []Match{}, nil
	}

	embedStart := time.Now()
	vectors, err := q.embedder.Embed(ctx, []string{text})
	q.metrics.ObserveEmbedding(1, embedStart, err)
	if err != nil {
		return nil, err
	}

	hits, err := q.store.Query(ctx, q.cfg.IndexName, vectors[0], topK, nil)
	if errors.Is(err, vectordb.ErrIndexNotFound) {
		return []Match{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	matches = make([]Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, toMatch(h))
	}
	q.tracer.SetAttributes(span, map[string]interface{}{"top_k": topK, "matches": len(matches)})
	return matches, nil
}

// QueryDocuments returns at most k matches with distinct source hashes, each
// the best scoring chunk of its document. It fetches CandidateK chunks (or k,
// if larger) so that documents with many matching chunks do not crowd out
// the others.
func (q *Querier) QueryDocuments(ctx context.Context, text string, k int) ([]Match, error) {
	matches, err := q.Query(ctx, text, max(k, q.cfg.CandidateK))
	if err != nil {
		return nil, err
	}
	return Dedupe(matches, k), nil
}

// Dedupe keeps the first match of every source hash, preserving order, and
// stops after k matches.
func Dedupe(matches []Match, k int) []Match {
	out := make([]Match, 0, min(k, len(matches)))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if len(out) == k {
			break
		}
		if _, dup := seen[m.SourceHash]; dup {
			continue
		}
		seen[m.SourceHash] = struct{}{}
		out = append(out, m)
	}
	return out
}

func toMatch(h vectordb.SearchResult) Match {
	m := Match{Score: h.Score, Payload: h.Payload}
	if s, ok := h.Payload[vectordb.PayloadSourceHash].(string); ok {
		m.SourceHash = s
	}
	if s, ok := h.Payload[vectordb.PayloadText].(string); ok {
		m.Text = s
	}
	m.ChunkIndex = toInt(h.Payload[vectordb.PayloadChunkIndex])
	return m
}

// toInt reads chunk_index whatever numeric type the backend decoded it as.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

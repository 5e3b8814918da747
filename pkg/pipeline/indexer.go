package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/chunker"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

// IndexResult describes what Index wrote.
type IndexResult struct {
	SourceHash string   `json:"sourceHash"`
	Chunks     int      `json:"chunks"`
	IDs        []string `json:"ids"`
}

// Indexer turns a job opening into vector records.
type Indexer struct {
	deps
	chunker  *chunker.Chunker
	embedder Embedder

	// indexReady is set once the index is known to exist.
	indexReady atomic.Bool
}

func NewIndexer(cfg Config, c *chunker.Chunker, e Embedder, store vectordb.Service, logger Logger, opts ...Option) *Indexer {
	return &Indexer{
		deps:     newDeps(cfg, store, logger, opts),
		chunker:  c,
		embedder: e,
	}
}

// Index validates doc, chunks it, embeds all chunks in one request and
// upserts one record per chunk. Records are keyed by content hash and chunk
// index, so indexing the same document twice leaves a single copy.
func (ix *Indexer) Index(ctx context.Context, doc jobs.JobOpening) (res *IndexResult, err error) {
	start := time.Now()
	ctx, span := ix.tracer.StartSpan(ctx, "pipeline.index")
	defer func() {
		ix.tracer.RecordErrorOnSpan(span, err)
		span.End()
		chunks := 0
		if res != nil {
			chunks = res.Chunks
		}
		ix.metrics.ObserveIndex(chunks, start, err)
	}()

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	hash, err := jobs.ContentHash(doc)
	if err != nil {
		return nil, err
	}
	ix.tracer.SetAttributes(span, map[string]interface{}{"source_hash": hash})

	seq, err := ix.chunker.Chunk(doc)
	if err != nil {
		return nil, err
	}
	var (
		chunks []chunker.Chunk
		texts  []string
	)
	for c := range seq {
		chunks = append(chunks, c)
		texts = append(texts, c.Text)
	}

	vectors, err := ix.embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	if err := ix.ensureIndex(ctx); err != nil {
		return nil, err
	}

	fields := doc.Fields()
	payloads := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		p := make(map[string]any, len(fields)+3)
		for k, v := range fields {
			p[k] = v
		}
		p[vectordb.PayloadText] = c.Text
		p[vectordb.PayloadSourceHash] = hash
		p[vectordb.PayloadChunkIndex] = c.Index
		payloads[i] = p
	}

	up, err := ix.store.Upsert(ctx, ix.cfg.IndexName, vectors, payloads)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert chunks: %w", err)
	}

	ix.tracer.SetAttributes(span, map[string]interface{}{"chunks": len(chunks)})
	ix.logger.Debug("document indexed", nil, map[string]interface{}{
		"source_hash": hash,
		"chunks":      len(chunks),
		"index":       ix.cfg.IndexName,
	})

	return &IndexResult{SourceHash: hash, Chunks: len(chunks), IDs: up.IDs}, nil
}

func (ix *Indexer) embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	start := time.Now()
	ctx, span := ix.tracer.StartSpan(ctx, "pipeline.embed")
	defer func() {
		ix.tracer.RecordErrorOnSpan(span, err)
		span.End()
		ix.metrics.ObserveEmbedding(len(texts), start, err)
	}()
	ix.tracer.SetAttributes(span, map[string]interface{}{"texts": len(texts)})

	return ix.embedder.Embed(ctx, texts)
}

func (ix *Indexer) ensureIndex(ctx context.Context) error {
	if ix.indexReady.Load() {
		return nil
	}
	created, err := vectordb.EnsureIndex(ctx, ix.store, ix.cfg.IndexName, ix.embedder.Dimension())
	if err != nil {
		return fmt.Errorf("failed to ensure index %s: %w", ix.cfg.IndexName, err)
	}
	if created {
		ix.logger.Info("vector index created", nil, map[string]interface{}{
			"index":     ix.cfg.IndexName,
			"dimension": ix.embedder.Dimension(),
		})
	}
	ix.indexReady.Store(true)
	return nil
}

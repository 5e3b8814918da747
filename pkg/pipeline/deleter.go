package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

// Deleter removes a document's records from the index.
type Deleter struct {
	deps
}

func NewDeleter(cfg Config, store vectordb.Service, logger Logger, opts ...Option) *Deleter {
	return &Deleter{deps: newDeps(cfg, store, logger, opts)}
}

// Delete removes every chunk record whose source_hash equals hash. Deleting
// from an index that does not exist removes nothing and is not an error.
func (d *Deleter) Delete(ctx context.Context, hash string) (res *vectordb.DeleteResult, err error) {
	start := time.Now()
	ctx, span := d.tracer.StartSpan(ctx, "pipeline.delete")
	defer func() {
		d.tracer.RecordErrorOnSpan(span, err)
		span.End()
		d.metrics.ObserveDelete(start, err)
	}()

	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("%w: source hash cannot be empty", jobs.ErrValidation)
	}
	d.tracer.SetAttributes(span, map[string]interface{}{"source_hash": hash})

	res, err = d.store.Delete(ctx, d.cfg.IndexName, vectordb.BySourceHash(hash))
	if errors.Is(err, vectordb.ErrIndexNotFound) {
		return &vectordb.DeleteResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete chunks: %w", err)
	}

	d.logger.Debug("document vectors deleted", nil, map[string]interface{}{
		"source_hash": hash,
		"deleted":     res.Deleted,
	})
	return res, nil
}

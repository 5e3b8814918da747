package service

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Describer writes a summary and keywords for a document. *agent.Agent
// implements it.
//
//go:generate mockgen -source=service.go -destination=mock_service.go -package=service
type Describer interface {
	Enabled() bool
	Describe(ctx context.Context, doc jobs.JobOpening) (*agent.Description, error)
}

type Indexer interface {
	Index(ctx context.Context, doc jobs.JobOpening) (*pipeline.IndexResult, error)
}

type Querier interface {
	QueryDocuments(ctx context.Context, text string, k int) ([]pipeline.Match, error)
}

type Deleter interface {
	Delete(ctx context.Context, hash string) (*vectordb.DeleteResult, error)
}

type Emitter interface {
	Emit(ctx context.Context, evt events.Event)
}

// CreateResult is returned by Create.
type CreateResult struct {
	JobID    string        `json:"jobId"`
	Chunks   int           `json:"chunks"`
	Metadata jobs.Metadata `json:"metadata"`
}

// JobOpenings implements the operations behind the /job-openings routes.
// The document store is authoritative for reads by id and listings; the
// vector index serves search.
type JobOpenings struct {
	store     docstore.Store
	indexer   Indexer
	querier   Querier
	deleter   Deleter
	describer Describer
	emitter   Emitter
	metrics   *metrics.Metrics
	logger    Logger
}

type Params struct {
	Store     docstore.Store
	Indexer   Indexer
	Querier   Querier
	Deleter   Deleter
	Describer Describer
	Emitter   Emitter
	Metrics   *metrics.Metrics
	Logger    Logger
}

func New(p Params) *JobOpenings {
	return &JobOpenings{
		store:     p.Store,
		indexer:   p.Indexer,
		querier:   p.Querier,
		deleter:   p.Deleter,
		describer: p.Describer,
		emitter:   p.Emitter,
		metrics:   p.Metrics,
		logger:    p.Logger,
	}
}

func (s *JobOpenings) Get(ctx context.Context, id string) (*jobs.StoredDocument, error) {
	return s.store.Get(ctx, id)
}

// List returns every stored document without its generated metadata.
func (s *JobOpenings) List(ctx context.Context) ([]jobs.ListedDocument, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.SetDocumentsStored(len(docs))

	out := make([]jobs.ListedDocument, len(docs))
	for i, d := range docs {
		out[i] = d.Stripped()
	}
	return out, nil
}

// Search returns at most k matches for text, one per document, best first.
func (s *JobOpenings) Search(ctx context.Context, text string, k int) ([]pipeline.Match, error) {
	return s.querier.QueryDocuments(ctx, text, k)
}

// Create validates doc, stores it with generated metadata and indexes it.
// The document id is its content hash, so posting the same document twice
// rewrites the same entry. A failed indexing step leaves the stored copy in
// place.
func (s *JobOpenings) Create(ctx context.Context, doc jobs.JobOpening) (*CreateResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	id, err := jobs.ContentHash(doc)
	if err != nil {
		return nil, err
	}

	stored := &jobs.StoredDocument{
		JobOpening: doc,
		ID:         id,
		Metadata:   s.metadata(ctx, doc),
	}
	if err := s.store.Put(ctx, stored); err != nil {
		return nil, err
	}

	res, err := s.indexer.Index(ctx, doc)
	if err != nil {
		s.logger.Error("document stored but not indexed", err, map[string]interface{}{
			"job_id": id,
		})
		return nil, err
	}

	s.emitter.Emit(ctx, events.Event{
		Type:     events.JobOpeningCreated,
		JobID:    id,
		Position: doc.Position,
		Chunks:   res.Chunks,
	})

	return &CreateResult{JobID: id, Chunks: res.Chunks, Metadata: stored.Metadata}, nil
}

// Delete removes the document's vectors, then the stored document. An
// unknown id fails with docstore.ErrNotFound before anything is removed.
func (s *JobOpenings) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	res, err := s.deleter.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job opening deleted", nil, map[string]interface{}{
		"job_id":         id,
		"chunks_deleted": res.Deleted,
	})
	s.emitter.Emit(ctx, events.Event{Type: events.JobOpeningDeleted, JobID: id})
	return nil
}

// metadata derives the stored metadata locally and, when an agent is
// configured, replaces summary and keywords with the model's answer.
// Agent failures fall back to the local values.
func (s *JobOpenings) metadata(ctx context.Context, doc jobs.JobOpening) jobs.Metadata {
	md := jobs.NewMetadata(doc, "")
	if s.describer == nil || !s.describer.Enabled() {
		return md
	}

	desc, err := s.describer.Describe(ctx, doc)
	if err != nil {
		level := s.logger.Warn
		if !errors.Is(err, agent.ErrAgent) {
			level = s.logger.Error
		}
		level("metadata enrichment failed, using derived metadata", err, nil)
		return md
	}

	md.Summary = desc.Summary
	if len(desc.Keywords) > 0 {
		md.Keywords = desc.Keywords
	}
	return md
}

// IsNotFound reports whether err means the requested document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, docstore.ErrNotFound)
}

// IsInvalid reports whether err was caused by the caller's input.
func IsInvalid(err error) bool {
	return errors.Is(err, jobs.ErrValidation)
}

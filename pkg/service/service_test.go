package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	store     docstore.Store
	indexer   *MockIndexer
	querier   *MockQuerier
	deleter   *MockDeleter
	describer *MockDescriber
	emitter   *MockEmitter
}

func newService(t *testing.T) (*JobOpenings, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store, err := docstore.NewFileStore(t.TempDir(), 2, logger.NewNopLogger())
	require.NoError(t, err)

	m := mocks{
		store:     store,
		indexer:   NewMockIndexer(ctrl),
		querier:   NewMockQuerier(ctrl),
		deleter:   NewMockDeleter(ctrl),
		describer: NewMockDescriber(ctrl),
		emitter:   NewMockEmitter(ctrl),
	}
	svc := New(Params{
		Store:     m.store,
		Indexer:   m.indexer,
		Querier:   m.querier,
		Deleter:   m.deleter,
		Describer: m.describer,
		Emitter:   m.emitter,
		Logger:    logger.NewNopLogger(),
	})
	return svc, m
}

func opening() jobs.JobOpening {
	return jobs.JobOpening{
		Position:            "Data Engineer",
		Category:            "Engineering",
		Type:                "Full-time",
		Schedule:            "Flexible",
		Location:            "Remote",
		SalaryRange:         "80k-100k",
		Description:         "Build pipelines.",
		KeyResponsibilities: []string{"Own ETL"},
		Requirements:        []string{"SQL", "Python"},
		ExperienceRequired:  "2 years",
	}
}

func TestCreateStoresIndexesAndEmits(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()
	doc := opening()
	id, err := jobs.ContentHash(doc)
	require.NoError(t, err)

	m.describer.EXPECT().Enabled().Return(false)
	m.indexer.EXPECT().Index(gomock.Any(), doc).Return(&pipeline.IndexResult{SourceHash: id, Chunks: 4}, nil)
	m.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Do(func(_ context.Context, evt events.Event) {
		assert.Equal(t, events.JobOpeningCreated, evt.Type)
		assert.Equal(t, id, evt.JobID)
		assert.Equal(t, 4, evt.Chunks)
	})

	res, err := svc.Create(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, id, res.JobID)
	assert.Equal(t, 4, res.Chunks)
	assert.Equal(t, jobs.DocumentType, res.Metadata.DocumentType)
	assert.NotEmpty(t, res.Metadata.FilePath)

	stored, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, doc, stored.JobOpening)
	assert.Equal(t, res.Metadata, stored.Metadata)
}

func TestCreateUsesAgentDescription(t *testing.T) {
	svc, m := newService(t)
	doc := opening()

	m.describer.EXPECT().Enabled().Return(true)
	m.describer.EXPECT().Describe(gomock.Any(), doc).Return(&agent.Description{
		Summary:  "Remote data role.",
		Keywords: []string{"etl", "sql"},
	}, nil)
	m.indexer.EXPECT().Index(gomock.Any(), doc).Return(&pipeline.IndexResult{Chunks: 1}, nil)
	m.emitter.EXPECT().Emit(gomock.Any(), gomock.Any())

	res, err := svc.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Remote data role.", res.Metadata.Summary)
	assert.Equal(t, []string{"etl", "sql"}, res.Metadata.Keywords)
	assert.Equal(t, jobs.Domain(doc), res.Metadata.Domain)
}

func TestCreateFallsBackWhenAgentFails(t *testing.T) {
	svc, m := newService(t)
	doc := opening()

	m.describer.EXPECT().Enabled().Return(true)
	m.describer.EXPECT().Describe(gomock.Any(), doc).Return(nil, agent.ErrAgent)
	m.indexer.EXPECT().Index(gomock.Any(), doc).Return(&pipeline.IndexResult{Chunks: 1}, nil)
	m.emitter.EXPECT().Emit(gomock.Any(), gomock.Any())

	res, err := svc.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, jobs.Summary(doc), res.Metadata.Summary)
	assert.Equal(t, jobs.Keywords(doc), res.Metadata.Keywords)
}

func TestCreateRejectsInvalidDocumentWithoutSideEffects(t *testing.T) {
	svc, m := newService(t)
	doc := opening()
	doc.Requirements = nil

	_, err := svc.Create(context.Background(), doc)
	assert.True(t, IsInvalid(err))

	docs, err := m.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateReturnsIndexErrorWithoutEvent(t *testing.T) {
	svc, m := newService(t)
	doc := opening()

	m.describer.EXPECT().Enabled().Return(false)
	m.indexer.EXPECT().Index(gomock.Any(), doc).Return(nil, vectordb.ErrVectorStore)

	_, err := svc.Create(context.Background(), doc)
	assert.ErrorIs(t, err, vectordb.ErrVectorStore)
}

func TestListStripsMetadata(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()
	require.NoError(t, m.store.Put(ctx, &jobs.StoredDocument{
		JobOpening: opening(),
		ID:         "abc",
		Metadata:   jobs.NewMetadata(opening(), ""),
	}))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "abc", docs[0].ID)
	assert.Equal(t, opening(), docs[0].JobOpening)
}

func TestDeleteRemovesVectorsThenDocument(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()
	require.NoError(t, m.store.Put(ctx, &jobs.StoredDocument{JobOpening: opening(), ID: "abc"}))

	gomock.InOrder(
		m.deleter.EXPECT().Delete(gomock.Any(), "abc").Return(&vectordb.DeleteResult{Deleted: 3}, nil),
		m.emitter.EXPECT().Emit(gomock.Any(), events.Event{Type: events.JobOpeningDeleted, JobID: "abc"}),
	)

	require.NoError(t, svc.Delete(ctx, "abc"))
	_, err := svc.Get(ctx, "abc")
	assert.True(t, IsNotFound(err))
}

func TestDeleteUnknownIDTouchesNothing(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestDeleteKeepsDocumentWhenVectorDeleteFails(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()
	require.NoError(t, m.store.Put(ctx, &jobs.StoredDocument{JobOpening: opening(), ID: "abc"}))

	m.deleter.EXPECT().Delete(gomock.Any(), "abc").Return(nil, errors.Join(vectordb.ErrVectorStore, errors.New("timeout")))

	err := svc.Delete(ctx, "abc")
	assert.ErrorIs(t, err, vectordb.ErrVectorStore)

	_, err = svc.Get(ctx, "abc")
	assert.NoError(t, err)
}

func TestSearchDelegatesToQuerier(t *testing.T) {
	svc, m := newService(t)
	want := []pipeline.Match{{SourceHash: "a", Score: 0.9}}
	m.querier.EXPECT().QueryDocuments(gomock.Any(), "go remote", 3).Return(want, nil)

	got, err := svc.Search(context.Background(), "go remote", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

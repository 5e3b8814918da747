package server

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/agent"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/chunker"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/docstore"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/embedding"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/events"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/service"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = "test"
	return cfg
}

func newMockedServer(t *testing.T) (*Server, *MockJobService) {
	t.Helper()
	svc := NewMockJobService(gomock.NewController(t))
	return NewServer(testConfig(), svc, nil, nil, logger.NewNopLogger()), svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func opening() jobs.JobOpening {
	return jobs.JobOpening{
		Position:            "Backend Engineer",
		Category:            "Engineering",
		Type:                "Full-time",
		Schedule:            "Flexible",
		Location:            "Remote",
		SalaryRange:         "90k-110k",
		Description:         "Build remote Go services for our job platform.",
		KeyResponsibilities: []string{"Design APIs", "Operate services"},
		Requirements:        []string{"Go", "PostgreSQL"},
		ExperienceRequired:  "3 years",
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestGetByID(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Get(gomock.Any(), "abc").Return(&jobs.StoredDocument{ID: "abc", JobOpening: opening()}, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings?jobId=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got jobs.StoredDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "Backend Engineer", got.Position)
}

func TestGetUnknownIDIs404(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Get(gomock.Any(), "nope").Return(nil, docstore.ErrNotFound)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings?jobId=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, docstore.ErrNotFound.Error(), errorBody(t, rec))
}

func TestGetIDTakesPrecedenceOverQuery(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Get(gomock.Any(), "abc").Return(&jobs.StoredDocument{ID: "abc"}, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings?jobId=abc&jobQuery=go", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchUsesConfiguredTopK(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Search(gomock.Any(), "remote go", DefaultQueryTopK).Return([]pipeline.Match{{
		SourceHash: "abc",
		Score:      0.8,
		ChunkIndex: 1,
		Text:       "Build remote Go services",
		Payload: map[string]any{
			"position":                 "Backend Engineer",
			vectordb.PayloadText:       "Build remote Go services",
			vectordb.PayloadSourceHash: "abc",
			vectordb.PayloadChunkIndex: 1,
		},
	}}, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings?jobQuery=remote+go", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []SearchHit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "abc", hits[0].JobID)
	assert.Equal(t, 1, hits[0].ChunkIndex)
	assert.Equal(t, map[string]any{"position": "Backend Engineer"}, hits[0].Document)
}

func TestSearchEmptyResultIsEmptyArray(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Search(gomock.Any(), "", DefaultQueryTopK).Return(nil, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings?jobQuery=", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListWithoutParameters(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().List(gomock.Any()).Return([]jobs.ListedDocument{{ID: "a", JobOpening: opening()}}, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0]["id"])
	assert.NotContains(t, docs[0], "metadata")
}

func TestCreateReturns201(t *testing.T) {
	s, svc := newMockedServer(t)
	doc := opening()
	svc.EXPECT().Create(gomock.Any(), doc).Return(&service.CreateResult{JobID: "h", Chunks: 3}, nil)

	rec := do(t, s.Handler(), http.MethodPost, "/job-openings", mustJSON(t, doc))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res service.CreateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "h", res.JobID)
	assert.Equal(t, 3, res.Chunks)
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	s, _ := newMockedServer(t)

	rec := do(t, s.Handler(), http.MethodPost, "/job-openings", `{"position":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "invalid JSON body")
}

func TestCreateValidationErrorIs400(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, jobs.ErrValidation)

	rec := do(t, s.Handler(), http.MethodPost, "/job-openings", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBodyTooLarge(t *testing.T) {
	svc := NewMockJobService(gomock.NewController(t))
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	s := NewServer(cfg, svc, nil, nil, logger.NewNopLogger())

	rec := do(t, s.Handler(), http.MethodPost, "/job-openings", mustJSON(t, opening()))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStoreFailureIs500AndLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockJobService(ctrl)
	log := NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn("Request completed", nil, gomock.Any())
	log.EXPECT().Error("request failed", gomock.Any(), gomock.Any())
	s := NewServer(testConfig(), svc, nil, nil, log)

	svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk on fire"))

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk on fire", errorBody(t, rec))
}

func TestDeleteRequiresJobID(t *testing.T) {
	s, _ := newMockedServer(t)

	rec := do(t, s.Handler(), http.MethodDelete, "/job-openings", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUnknownIDIs404(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().Delete(gomock.Any(), "nope").Return(docstore.ErrNotFound)

	rec := do(t, s.Handler(), http.MethodDelete, "/job-openings?jobId=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchema(t *testing.T) {
	s, _ := newMockedServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/job-openings/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "position")
	assert.Contains(t, props, "keyResponsibilities")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s, _ := newMockedServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", errorBody(t, rec))
}

func TestHealth(t *testing.T) {
	checks := []HealthCheck{
		{Name: "vector_store", Check: func(context.Context) error { return nil }},
	}
	s := NewServer(testConfig(), NewMockJobService(gomock.NewController(t)), nil, checks, logger.NewNopLogger())

	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	checks = append(checks, HealthCheck{Name: "docstore", Check: func(context.Context) error { return errors.New("unreachable") }})
	s = NewServer(testConfig(), NewMockJobService(gomock.NewController(t)), nil, checks, logger.NewNopLogger())

	rec = do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unreachable")
}

func TestRequestContextHasDeadline(t *testing.T) {
	s, svc := newMockedServer(t)
	svc.EXPECT().List(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]jobs.ListedDocument, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(DefaultConfig().RequestTimeout), deadline, 5*time.Second)
		return nil, nil
	})

	do(t, s.Handler(), http.MethodGet, "/job-openings", "")
}

// wordsProvider embeds a text by hashing its words into buckets so that texts
// sharing words are close under cosine similarity.
type wordsProvider struct{}

func (wordsProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, embedding.DefaultDimension)
		for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(w))
			v[h.Sum32()%uint32(embedding.DefaultDimension)]++
		}
		out[i] = v
	}
	return out, nil
}

type stack struct {
	server *Server
	store  docstore.Store
	vector *vectordb.MemoryStore
}

// newStack wires the real service over a file store and the in-memory
// vector store.
func newStack(t *testing.T) stack {
	t.Helper()
	log := logger.NewNopLogger()

	store, err := docstore.NewFileStore(t.TempDir(), 2, log)
	require.NoError(t, err)
	vector := vectordb.NewMemoryStore()
	c, err := chunker.NewChunker(chunker.DefaultConfig())
	require.NoError(t, err)
	embedder := embedding.NewClientWithProvider(wordsProvider{}, embedding.DefaultDimension)
	describer, err := agent.NewAgent(agent.DefaultConfig(), log)
	require.NoError(t, err)

	emitter := events.NewEmitter(events.Noop{}, nil, log)
	t.Cleanup(func() { _ = emitter.Close(context.Background()) })

	pcfg := pipeline.DefaultConfig()
	svc := service.New(service.Params{
		Store:     store,
		Indexer:   pipeline.NewIndexer(pcfg, c, embedder, vector, log),
		Querier:   pipeline.NewQuerier(pcfg, embedder, vector, log),
		Deleter:   pipeline.NewDeleter(pcfg, vector, log),
		Describer: describer,
		Emitter:   emitter,
		Logger:    log,
	})
	return stack{
		server: NewServer(testConfig(), svc, nil, nil, log),
		store:  store,
		vector: vector,
	}
}

func TestEndToEndCreateSearchDelete(t *testing.T) {
	st := newStack(t)
	h := st.server.Handler()

	rec := do(t, h, http.MethodPost, "/job-openings", mustJSON(t, opening()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created service.CreateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Positive(t, created.Chunks)

	rec = do(t, h, http.MethodGet, "/job-openings?jobQuery=remote+go+services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hits []SearchHit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, created.JobID, hits[0].JobID)

	rec = do(t, h, http.MethodDelete, "/job-openings?jobId="+created.JobID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/job-openings?jobId="+created.JobID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	info, err := st.vector.Info(context.Background(), pipeline.DefaultConfig().IndexName)
	require.NoError(t, err)
	assert.Zero(t, info.Count)
}

func TestEndToEndMissingPositionHasNoSideEffects(t *testing.T) {
	st := newStack(t)
	doc := opening()
	doc.Position = ""

	rec := do(t, st.server.Handler(), http.MethodPost, "/job-openings", mustJSON(t, doc))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "position")

	docs, err := st.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	indexes, err := st.vector.ListIndexes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, indexes)
}

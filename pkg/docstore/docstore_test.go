package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/minio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(id, position string) *jobs.StoredDocument {
	j := jobs.JobOpening{
		Position:            position,
		Category:            "Engineering",
		Type:                "Full-time",
		Schedule:            "Mon-Fri",
		Location:            "Remote",
		SalaryRange:         "100k-120k",
		Description:         "Build services.",
		KeyResponsibilities: []string{"Write Go"},
		Requirements:        []string{"Go"},
		ExperienceRequired:  "3 years",
	}
	return &jobs.StoredDocument{ID: id, JobOpening: j, Metadata: jobs.NewMetadata(j, "")}
}

// contract runs the same checks against every backend.
func contract(t *testing.T, store Store) {
	ctx := context.Background()

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	b := sampleDoc("bbb", "Designer")
	a := sampleDoc("aaa", "Engineer")
	require.NoError(t, store.Put(ctx, b))
	require.NoError(t, store.Put(ctx, a))
	assert.NotEmpty(t, a.Metadata.FilePath)

	got, err := store.Get(ctx, "aaa")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	docs, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "aaa", docs[0].ID)
	assert.Equal(t, "bbb", docs[1].ID)

	// overwrite keeps a single copy
	require.NoError(t, store.Put(ctx, sampleDoc("aaa", "Engineer")))
	docs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, store.Delete(ctx, "aaa"))
	_, err = store.Get(ctx, "aaa")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "aaa"), ErrNotFound)

	_, err = store.Get(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "docs"), 4, logger.NewNopLogger())
	require.NoError(t, err)

	contract(t, store)

	t.Run("ignores foreign files", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "notes.txt"), []byte("x"), 0o644))
		docs, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("ignores dotted json names", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "backup.v2.json"), []byte("{}"), 0o644))
		docs, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.NotEqual(t, "backup.v2", docs[0].ID)
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "broken.json"), []byte("{"), 0o644))
		_, err := store.Get(context.Background(), "broken")
		assert.ErrorIs(t, err, ErrFileSystem)

		_, err = store.List(context.Background())
		assert.ErrorIs(t, err, ErrFileSystem)
	})

	t.Run("file path", func(t *testing.T) {
		doc := sampleDoc("ccc", "PM")
		require.NoError(t, store.Put(context.Background(), doc))
		assert.Equal(t, filepath.Join(dir, "docs", "ccc.json"), doc.Metadata.FilePath)
	})
}

// fakeObjects is an in-memory ObjectClient.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) Put(_ context.Context, key string, r io.Reader, _ ...int64) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return int64(len(data)), nil
}

func (f *fakeObjects) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", minio.ErrObjectNotFound, key)
	}
	return bytes.Clone(data), nil
}

func (f *fakeObjects) List(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func TestObjectStore(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	store := NewObjectStore(objects, "job-openings/", 2, logger.NewNopLogger())

	contract(t, store)

	objects.objects["job-openings/nested/x.json"] = []byte("{}")
	objects.objects["other/y.json"] = []byte("{}")
	objects.objects["job-openings/backup.v2.json"] = []byte("{}")
	docs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	doc := sampleDoc("ddd", "QA")
	require.NoError(t, store.Put(context.Background(), doc))
	assert.Equal(t, "job-openings/ddd.json", doc.Metadata.FilePath)
}

func TestFetchAllStopsOnError(t *testing.T) {
	ids := []string{"a", "b", "c"}
	_, err := fetchAll(context.Background(), ids, 1, func(_ context.Context, id string) (*jobs.StoredDocument, error) {
		if id == "b" {
			return nil, fmt.Errorf("%w: boom", ErrFileSystem)
		}
		return &jobs.StoredDocument{ID: id}, nil
	})
	assert.ErrorIs(t, err, ErrFileSystem)
}

func TestFetchAllSkipsVanishedDocuments(t *testing.T) {
	ids := []string{"c", "b", "a"}
	docs, err := fetchAll(context.Background(), ids, 2, func(_ context.Context, id string) (*jobs.StoredDocument, error) {
		if id == "b" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return &jobs.StoredDocument{ID: id}, nil
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)
}

func TestFileStoreListToleratesConcurrentDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, 1, logger.NewNopLogger())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, sampleDoc("aaa", "Engineer")))
	require.NoError(t, store.Put(ctx, sampleDoc("bbb", "Designer")))

	// Remove bbb after the directory was read but before it is loaded.
	get := func(ctx context.Context, id string) (*jobs.StoredDocument, error) {
		if id == "bbb" {
			require.NoError(t, os.Remove(filepath.Join(dir, "bbb"+fileExt)))
		}
		return store.Get(ctx, id)
	}
	docs, err := fetchAll(ctx, []string{"aaa", "bbb"}, 1, get)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "aaa", docs[0].ID)
}

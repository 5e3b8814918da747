package docstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/minio"
)

// ObjectClient is the subset of *minio.Minio used by ObjectStore. Get must
// wrap minio.ErrObjectNotFound for missing keys.
type ObjectClient interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size ...int64) (int64, error)
	Get(ctx context.Context, objectKey string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, objectKey string) error
}

// ObjectStore keeps one JSON object per document under a key prefix.
type ObjectStore struct {
	client      ObjectClient
	prefix      string
	concurrency int
	logger      Logger
}

var (
	_ Store        = (*ObjectStore)(nil)
	_ ObjectClient = (*minio.Minio)(nil)
)

func NewObjectStore(client ObjectClient, prefix string, concurrency int, logger Logger) *ObjectStore {
	logger.Info("document store ready", nil, map[string]interface{}{
		"backend": BackendMinio,
		"prefix":  prefix,
	})
	return &ObjectStore{client: client, prefix: prefix, concurrency: concurrency, logger: logger}
}

func (s *ObjectStore) key(id string) string {
	return s.prefix + id + fileExt
}

func (s *ObjectStore) Put(ctx context.Context, doc *jobs.StoredDocument) error {
	if err := validID(doc.ID); err != nil {
		return err
	}
	doc.Metadata.FilePath = s.key(doc.ID)

	data, err := encode(doc)
	if err != nil {
		return err
	}
	if _, err := s.client.Put(ctx, s.key(doc.ID), bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("%w: put %s: %w", ErrFileSystem, doc.ID, err)
	}
	return nil
}

func (s *ObjectStore) Get(ctx context.Context, id string) (*jobs.StoredDocument, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(id))
	if err != nil {
		if errors.Is(err, minio.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get %s: %w", ErrFileSystem, id, err)
	}
	return decode(id, data)
}

func (s *ObjectStore) List(ctx context.Context) ([]jobs.StoredDocument, error) {
	keys, err := s.client.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrFileSystem, s.prefix, err)
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, s.prefix)
		if !strings.HasSuffix(name, fileExt) || strings.Contains(name, "/") {
			continue
		}
		id := strings.TrimSuffix(name, fileExt)
		if validID(id) != nil {
			continue
		}
		ids = append(ids, id)
	}
	return fetchAll(ctx, ids, s.concurrency, s.Get)
}

// Delete checks for the object first because S3 deletes of missing keys succeed.
func (s *ObjectStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, s.key(id)); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrFileSystem, id, err)
	}
	return nil
}

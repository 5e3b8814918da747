package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
)

const fileExt = ".json"

// FileStore keeps one indented JSON file per document in a directory.
type FileStore struct {
	dir         string
	concurrency int
	logger      Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates dir if needed.
func NewFileStore(dir string, concurrency int, logger Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrFileSystem, dir, err)
	}
	logger.Info("document store ready", nil, map[string]interface{}{
		"backend": BackendFile,
		"dir":     dir,
	})
	return &FileStore{dir: dir, concurrency: concurrency, logger: logger}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Put writes to a temporary file and renames it into place.
func (s *FileStore) Put(_ context.Context, doc *jobs.StoredDocument) error {
	if err := validID(doc.ID); err != nil {
		return err
	}
	doc.Metadata.FilePath = s.path(doc.ID)

	data, err := encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, doc.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFileSystem, doc.ID, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrFileSystem, doc.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFileSystem, doc.ID, err)
	}
	if err := os.Rename(tmp.Name(), doc.Metadata.FilePath); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFileSystem, doc.ID, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (*jobs.StoredDocument, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrFileSystem, id, err)
	}
	return decode(id, data)
}

func (s *FileStore) List(ctx context.Context) ([]jobs.StoredDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrFileSystem, s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), fileExt)
		if validID(id) != nil {
			continue
		}
		ids = append(ids, id)
	}
	return fetchAll(ctx, ids, s.concurrency, s.Get)
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: delete %s: %w", ErrFileSystem, id, err)
	}
	return nil
}

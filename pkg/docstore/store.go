package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"golang.org/x/sync/errgroup"
)

// Logger defines the logging methods used by the docstore package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Store persists stored documents keyed by their content hash.
//
//go:generate mockgen -source=store.go -destination=mock_store.go -package=docstore
type Store interface {
	// Put writes doc, overwriting any document with the same ID.
	// Backends fill doc.Metadata.FilePath with the location they wrote to.
	Put(ctx context.Context, doc *jobs.StoredDocument) error

	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*jobs.StoredDocument, error)

	// List returns every document ordered by ID.
	List(ctx context.Context) ([]jobs.StoredDocument, error)

	// Delete removes the document with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// validID rejects ids that could escape a directory or key prefix.
func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return fmt.Errorf("%w: invalid document id %q", ErrNotFound, id)
	}
	return nil
}

func encode(doc *jobs.StoredDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrFileSystem, doc.ID, err)
	}
	return data, nil
}

func decode(name string, data []byte) (*jobs.StoredDocument, error) {
	var doc jobs.StoredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrFileSystem, name, err)
	}
	return &doc, nil
}

// fetchAll loads ids concurrently with at most limit reads in flight and
// returns the documents ordered by ID. Ids that vanish between listing and
// reading (ErrNotFound) are skipped.
func fetchAll(ctx context.Context, ids []string, limit int, get func(context.Context, string) (*jobs.StoredDocument, error)) ([]jobs.StoredDocument, error) {
	found := make([]*jobs.StoredDocument, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			doc, err := get(gctx, id)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]jobs.StoredDocument, 0, len(found))
	for _, doc := range found {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	slices.SortFunc(docs, func(a, b jobs.StoredDocument) int { return strings.Compare(a.ID, b.ID) })
	return docs, nil
}

package pgvector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/jackc/pgx/v5"
	pgv "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Logger defines the logging methods used by the pgvector package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Store implements vectordb.Service with one PostgreSQL table per index and
// a catalog table recording each index's dimension.
type Store struct {
	db     *postgres.Postgres
	cfg    Config
	logger Logger
}

var _ vectordb.Service = (*Store)(nil)

// NewStore enables the vector extension and migrates the index catalog.
func NewStore(ctx context.Context, db *postgres.Postgres, cfg Config, logger Logger) (*Store, error) {
	if cfg.TablePrefix == "" {
		cfg.TablePrefix = DefaultConfig().TablePrefix
	}
	if cfg.IndexType == "" {
		cfg.IndexType = IndexTypeHNSW
	}

	if _, err := db.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return nil, fmt.Errorf("%w: [pgvector] enable extension: %w", vectordb.ErrVectorStore, err)
	}
	if err := db.Migrate(&indexRecord{}); err != nil {
		return nil, fmt.Errorf("%w: [pgvector] migrate catalog: %w", vectordb.ErrVectorStore, err)
	}

	logger.Info("[pgvector] store ready", nil, map[string]interface{}{
		"table_prefix": cfg.TablePrefix,
		"index_type":   cfg.IndexType,
	})
	return &Store{db: db, cfg: cfg, logger: logger}, nil
}

// ListIndexes returns the catalogued index names in lexical order.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.Query(ctx).Model(&indexRecord{}).Order("name").Pluck("name", &names)
	if err != nil {
		return nil, fmt.Errorf("%w: [pgvector] list indexes: %w", vectordb.ErrVectorStore, err)
	}
	return names, nil
}

// CreateIndex creates the index table, its ANN index and an expression index
// on metadata->>'source_hash', then records it in the catalog.
func (s *Store) CreateIndex(ctx context.Context, name string, dimension int) error {
	if name == "" {
		return fmt.Errorf("%w: index name cannot be empty", vectordb.ErrVectorStore)
	}
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive", vectordb.ErrVectorStore)
	}

	if _, err := s.lookup(ctx, name); err == nil {
		return fmt.Errorf("%w: %s", vectordb.ErrIndexExists, name)
	} else if !errors.Is(err, vectordb.ErrIndexNotFound) {
		return err
	}

	table := s.cfg.TablePrefix + name
	tableIdent := pgx.Identifier{table}.Sanitize()

	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		stmts := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		embedding vector(%d),
		document TEXT,
		metadata JSONB,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`, tableIdent, dimension),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s ((metadata ->> '%s'))",
				pgx.Identifier{table + "_source_hash_idx"}.Sanitize(), tableIdent, vectordb.PayloadSourceHash),
		}
		if s.cfg.IndexType != IndexTypeNone {
			stmts = append(stmts, fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS %s ON %s USING %s (embedding vector_cosine_ops)",
				pgx.Identifier{table + "_embedding_idx"}.Sanitize(), tableIdent, s.cfg.IndexType,
			))
		}
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return tx.Create(&indexRecord{Name: name, Dimension: dimension, TableIdent: tableIdent}).Error
	})
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicateKey) {
			return fmt.Errorf("%w: %s", vectordb.ErrIndexExists, name)
		}
		return fmt.Errorf("%w: [pgvector] create index '%s': %w", vectordb.ErrVectorStore, name, err)
	}

	s.logger.Info("[pgvector] created index", nil, map[string]interface{}{
		"index":     name,
		"table":     table,
		"dimension": dimension,
	})
	return nil
}

// Upsert writes all records in a single transaction.
func (s *Store) Upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any) (*vectordb.UpsertResult, error) {
	if err := vectordb.ValidateUpsert(index, vectors, payloads); err != nil {
		return nil, err
	}
	rec, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(vectors))
	stmt := fmt.Sprintf(`INSERT INTO %s (id, embedding, document, metadata, updated_at)
VALUES (?, ?::vector, ?, ?::jsonb, NOW())
ON CONFLICT (id) DO UPDATE SET
    embedding = excluded.embedding,
    document = excluded.document,
    metadata = excluded.metadata,
    updated_at = excluded.updated_at`, rec.TableIdent)

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		for i, v := range vectors {
			if len(v) != rec.Dimension {
				return fmt.Errorf("%w: record %d has dimension %d, index '%s' expects %d",
					vectordb.ErrVectorStore, i, len(v), index, rec.Dimension)
			}
			meta, err := json.Marshal(payloads[i])
			if err != nil {
				return fmt.Errorf("%w: marshal payload %d: %w", vectordb.ErrVectorStore, i, err)
			}
			ids[i] = vectordb.RecordID(payloads[i], i)
			document, _ := payloads[i][vectordb.PayloadText].(string)
			if err := tx.Exec(stmt, ids[i], pgv.NewVector(v), document, string(meta)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, vectordb.ErrVectorStore) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: [pgvector] upsert into '%s': %w", vectordb.ErrVectorStore, index, err)
	}

	return &vectordb.UpsertResult{Upserted: len(ids), IDs: ids}, nil
}

// Query returns the topK records closest to vector by cosine distance.
// Scores are 1 - distance, so identical directions score 1.
func (s *Store) Query(ctx context.Context, index string, vector []float32, topK int, filters *vectordb.FilterSet) ([]vectordb.SearchResult, error) {
	if err := vectordb.ValidateQuery(index, vector, topK); err != nil {
		return nil, err
	}
	rec, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}
	if len(vector) != rec.Dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index '%s' expects %d",
			vectordb.ErrVectorStore, len(vector), index, rec.Dimension)
	}

	where, whereArgs, err := whereClause(filters)
	if err != nil {
		return nil, err
	}

	q := pgv.NewVector(vector)
	sql := fmt.Sprintf(`SELECT id, metadata, 1 - (embedding <=> ?::vector) AS score
FROM %s
WHERE %s
ORDER BY embedding <=> ?::vector ASC, updated_at ASC
LIMIT ?`, rec.TableIdent, where)

	args := make([]any, 0, len(whereArgs)+3)
	args = append(args, q)
	args = append(args, whereArgs...)
	args = append(args, q, topK)

	var rows []hitRow
	if err := s.db.Query(ctx).Raw(sql, args...).Scan(&rows); err != nil {
		return nil, fmt.Errorf("%w: [pgvector] query '%s': %w", vectordb.ErrVectorStore, index, err)
	}

	results := make([]vectordb.SearchResult, 0, len(rows))
	for _, row := range rows {
		payload := map[string]any{}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &payload); err != nil {
				return nil, fmt.Errorf("%w: [pgvector] decode metadata of %s: %w", vectordb.ErrVectorStore, row.ID, err)
			}
		}
		results = append(results, vectordb.SearchResult{
			ID:      row.ID,
			Score:   float32(row.Score),
			Payload: payload,
		})
	}
	return results, nil
}

// Delete removes every record matching filters. An empty filter is rejected.
func (s *Store) Delete(ctx context.Context, index string, filters *vectordb.FilterSet) (*vectordb.DeleteResult, error) {
	if filters.IsEmpty() {
		return nil, fmt.Errorf("%w: refusing to delete without a filter", vectordb.ErrVectorStore)
	}
	rec, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}

	where, args, err := whereClause(filters)
	if err != nil {
		return nil, err
	}

	n, err := s.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", rec.TableIdent, where), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: [pgvector] delete from '%s': %w", vectordb.ErrVectorStore, index, err)
	}

	s.logger.Info("[pgvector] deleted records", nil, map[string]interface{}{
		"index":   index,
		"deleted": n,
	})
	return &vectordb.DeleteResult{Deleted: int(n)}, nil
}

// Info describes an index.
func (s *Store) Info(ctx context.Context, index string) (*vectordb.IndexInfo, error) {
	rec, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Query(ctx).Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s", rec.TableIdent)).Scan(&count); err != nil {
		return nil, fmt.Errorf("%w: [pgvector] count '%s': %w", vectordb.ErrVectorStore, index, err)
	}
	return &vectordb.IndexInfo{Name: index, Dimension: rec.Dimension, Count: int(count)}, nil
}

// Close is a no-op; the connection pool belongs to the postgres module.
func (s *Store) Close() error {
	return nil
}

func (s *Store) lookup(ctx context.Context, name string) (*indexRecord, error) {
	var rec indexRecord
	if err := s.db.First(ctx, &rec, "name = ?", name); err != nil {
		if errors.Is(err, postgres.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", vectordb.ErrIndexNotFound, name)
		}
		return nil, fmt.Errorf("%w: [pgvector] lookup '%s': %w", vectordb.ErrVectorStore, name, err)
	}
	return &rec, nil
}

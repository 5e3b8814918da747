package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/postgres"
	"github.com/lib/pq"
)

// documentRow is the relational layout of a stored document.
type documentRow struct {
	ID                  string         `gorm:"primaryKey"`
	Position            string         `gorm:"not null"`
	Category            string         `gorm:"not null"`
	Type                string         `gorm:"not null"`
	Schedule            string         `gorm:"not null"`
	Location            string         `gorm:"not null"`
	SalaryRange         string         `gorm:"not null"`
	Description         string         `gorm:"not null"`
	KeyResponsibilities pq.StringArray `gorm:"type:text[]"`
	Requirements        pq.StringArray `gorm:"type:text[]"`
	Qualifications      pq.StringArray `gorm:"type:text[]"`
	ExperienceRequired  string         `gorm:"not null"`

	DocumentType string
	Domain       string `gorm:"index"`
	Summary      string
	Keywords     pq.StringArray `gorm:"type:text[]"`
	FilePath     string

	CreatedAt time.Time
}

func (documentRow) TableName() string { return "job_openings" }

func toRow(doc *jobs.StoredDocument) *documentRow {
	return &documentRow{
		ID:                  doc.ID,
		Position:            doc.Position,
		Category:            doc.Category,
		Type:                doc.Type,
		Schedule:            doc.Schedule,
		Location:            doc.Location,
		SalaryRange:         doc.SalaryRange,
		Description:         doc.Description,
		KeyResponsibilities: doc.KeyResponsibilities,
		Requirements:        doc.Requirements,
		Qualifications:      doc.Qualifications,
		ExperienceRequired:  doc.ExperienceRequired,
		DocumentType:        doc.Metadata.DocumentType,
		Domain:              doc.Metadata.Domain,
		Summary:             doc.Metadata.Summary,
		Keywords:            doc.Metadata.Keywords,
		FilePath:            doc.Metadata.FilePath,
	}
}

func (r *documentRow) toDocument() jobs.StoredDocument {
	var quals []string
	if len(r.Qualifications) > 0 {
		quals = r.Qualifications
	}
	return jobs.StoredDocument{
		ID: r.ID,
		JobOpening: jobs.JobOpening{
			Position:            r.Position,
			Category:            r.Category,
			Type:                r.Type,
			Schedule:            r.Schedule,
			Location:            r.Location,
			SalaryRange:         r.SalaryRange,
			Description:         r.Description,
			KeyResponsibilities: r.KeyResponsibilities,
			Requirements:        r.Requirements,
			Qualifications:      quals,
			ExperienceRequired:  r.ExperienceRequired,
		},
		Metadata: jobs.Metadata{
			DocumentType: r.DocumentType,
			Domain:       r.Domain,
			Summary:      r.Summary,
			Keywords:     r.Keywords,
			FilePath:     r.FilePath,
		},
	}
}

// listPageSize bounds the rows read per query while listing.
const listPageSize = 500

// PostgresStore keeps documents in the job_openings table.
type PostgresStore struct {
	db       *postgres.Postgres
	pageSize int
	logger   Logger
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore migrates the job_openings table.
func NewPostgresStore(db *postgres.Postgres, logger Logger) (*PostgresStore, error) {
	if err := db.Migrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("%w: migrate job_openings: %w", ErrFileSystem, err)
	}
	logger.Info("document store ready", nil, map[string]interface{}{
		"backend": BackendPostgres,
	})
	return &PostgresStore{db: db, pageSize: listPageSize, logger: logger}, nil
}

func (s *PostgresStore) Put(ctx context.Context, doc *jobs.StoredDocument) error {
	if err := validID(doc.ID); err != nil {
		return err
	}
	doc.Metadata.FilePath = "postgres://job_openings/" + doc.ID
	if err := s.db.Upsert(ctx, toRow(doc)); err != nil {
		return fmt.Errorf("%w: put %s: %w", ErrFileSystem, doc.ID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*jobs.StoredDocument, error) {
	var row documentRow
	if err := s.db.First(ctx, &row, "id = ?", id); err != nil {
		if errors.Is(err, postgres.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get %s: %w", ErrFileSystem, id, err)
	}
	doc := row.toDocument()
	return &doc, nil
}

// List pages through the table in id order, keyed on the last id seen.
func (s *PostgresStore) List(ctx context.Context) ([]jobs.StoredDocument, error) {
	var docs []jobs.StoredDocument
	after := ""
	for {
		var rows []documentRow
		err := s.db.Query(ctx).
			Where("id > ?", after).
			Order("id").
			Limit(s.pageSize).
			Find(&rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list: %w", ErrFileSystem, err)
		}
		for i := range rows {
			docs = append(docs, rows[i].toDocument())
		}
		if len(rows) < s.pageSize {
			break
		}
		after = rows[len(rows)-1].ID
	}
	if docs == nil {
		docs = []jobs.StoredDocument{}
	}
	return docs, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	n, err := s.db.Delete(ctx, &documentRow{}, "id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrFileSystem, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

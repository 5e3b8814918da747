package pgvector

import "time"

// indexRecord is one row of the index catalog.
type indexRecord struct {
	Name       string `gorm:"primaryKey"`
	Dimension  int    `gorm:"not null"`
	TableIdent string `gorm:"not null"`
	CreatedAt  time.Time
}

func (indexRecord) TableName() string { return "vector_indexes" }

// hitRow is the scan target of a similarity query.
type hitRow struct {
	ID       string
	Metadata []byte
	Score    float64
}

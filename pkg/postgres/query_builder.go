package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Query provides a flexible way to build queries. The returned QueryBuilder
// holds a read lock on the connection until a terminal method (Scan, Find or
// Pluck) runs, so every chain must end in one.
//
// Example:
//
//	var docs []Document
//	err := db.Query(ctx).
//	    Where("domain = ?", "engineering").
//	    Order("created_at DESC").
//	    Limit(10).
//	    Find(&docs)
func (p *Postgres) Query(ctx context.Context) *QueryBuilder {
	p.mu.RLock() // released by the terminal method
	return &QueryBuilder{
		db:      p.client.WithContext(ctx),
		release: p.mu.RUnlock,
	}
}

// QueryBuilder wraps GORM's chainable query API with the connection lock.
type QueryBuilder struct {
	db      *gorm.DB
	release func()
}

// Model specifies the model to query.
func (qb *QueryBuilder) Model(value interface{}) *QueryBuilder {
	qb.db = qb.db.Model(value)
	return qb
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (qb *QueryBuilder) Where(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Where(query, args...)
	return qb
}

// Order specifies the order of results.
func (qb *QueryBuilder) Order(value interface{}) *QueryBuilder {
	qb.db = qb.db.Order(value)
	return qb
}

// Limit caps the number of returned records.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.db = qb.db.Limit(limit)
	return qb
}

// Raw replaces the query with raw SQL.
func (qb *QueryBuilder) Raw(sql string, values ...interface{}) *QueryBuilder {
	qb.db = qb.db.Raw(sql, values...)
	return qb
}

// Scan scans the result into dest. Terminal.
func (qb *QueryBuilder) Scan(dest interface{}) error {
	defer qb.release()
	return TranslateError(qb.db.Scan(dest).Error)
}

// Find finds records matching the built query. Terminal.
func (qb *QueryBuilder) Find(dest interface{}) error {
	defer qb.release()
	return TranslateError(qb.db.Find(dest).Error)
}

// Pluck reads a single column into dest. Terminal.
func (qb *QueryBuilder) Pluck(column string, dest interface{}) error {
	defer qb.release()
	return TranslateError(qb.db.Pluck(column, dest).Error)
}

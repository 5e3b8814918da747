package postgres

import (
	"context"

	"gorm.io/gorm/clause"
)

// First finds the first record that matches the given conditions.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return TranslateError(p.client.WithContext(ctx).First(dest, conditions...).Error)
}

// Upsert inserts value or, when its primary key already exists, overwrites
// every column.
func (p *Postgres) Upsert(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return TranslateError(p.client.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value).Error)
}

// Delete deletes records that match the given conditions and reports how
// many rows were removed.
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	res := p.client.WithContext(ctx).Delete(value, conditions...)
	return res.RowsAffected, TranslateError(res.Error)
}

// Exec executes raw SQL and reports the affected row count.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	res := p.client.WithContext(ctx).Exec(sql, values...)
	return res.RowsAffected, TranslateError(res.Error)
}

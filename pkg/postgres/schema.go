package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or alters the tables of models. Stores call it once from
// their constructor.
func (p *Postgres) Migrate(models ...interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.AutoMigrate(models...); err != nil {
		p.logger.Error("schema migration failed", err, map[string]interface{}{
			"models": modelNames(models),
		})
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Transaction runs fn in a transaction, rolled back when fn fails.
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return TranslateError(p.client.WithContext(ctx).Transaction(fn))
}

func modelNames(models []interface{}) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = fmt.Sprintf("%T", m)
	}
	return names
}

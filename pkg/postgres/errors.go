package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a lookup matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when a write violates a foreign key.
	ErrForeignKey = errors.New("foreign key violation")
)

// TranslateError maps gorm errors onto the sentinels above. The result wraps
// both the sentinel and the original error; unknown errors pass through.
func TranslateError(err error) error {
	var sentinel error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sentinel = ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		sentinel = ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		sentinel = ErrForeignKey
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Package postgres wraps gorm.DB with connection monitoring, automatic
// reconnection and a small set of lock-guarded operations.
//
// It is the shared database layer for the pgvector vector store and the
// postgres document store. Errors returned by the operations are passed
// through TranslateError, so callers can test for ErrRecordNotFound and
// ErrDuplicateKey without depending on gorm.
package postgres

package docstore

import "errors"

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrFileSystem wraps read, write and delete failures of any backend.
	ErrFileSystem = errors.New("file system error")
)

package vectordb

import (
	"errors"
	"fmt"
)

var (
	// ErrVectorStore is wrapped by every backend failure.
	ErrVectorStore = errors.New("vector store error")

	ErrIndexNotFound  = fmt.Errorf("%w: index not found", ErrVectorStore)
	ErrIndexExists    = fmt.Errorf("%w: index already exists", ErrVectorStore)
	ErrLengthMismatch = fmt.Errorf("%w: vectors and payloads differ in length", ErrVectorStore)
)

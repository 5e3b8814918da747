package embedding

import "errors"

// ErrEmbeddingService is wrapped by every failure of the remote embedding service:
// transport errors, non-2xx responses and malformed responses.
var ErrEmbeddingService = errors.New("embedding service error")

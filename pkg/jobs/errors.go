package jobs

import "errors"

// ErrValidation is returned when a document does not match the JobOpening schema.
var ErrValidation = errors.New("validation error")

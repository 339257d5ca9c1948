package repository

import "errors"

// ErrNotFound is returned when a document does not exist or is not
// owned by the caller; the two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("not found")

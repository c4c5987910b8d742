package history

import "errors"

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("history run not found")

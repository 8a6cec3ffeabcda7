package memory

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex matches any InvalidIndexError via errors.Is.
var ErrInvalidIndex = errors.New("invalid interaction index")

// InvalidIndexError reports an Update on an index outside the log.
type InvalidIndexError struct {
	Index int
	Len   int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid interaction index %d (log has %d entries)", e.Index, e.Len)
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// PersistenceError reports a failure to write the log to disk.
// The in-memory log has already been changed when it is returned.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist interaction log %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

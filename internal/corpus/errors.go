package corpus

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for sources whose extension is not a
// known tabular format.
var ErrUnsupportedFormat = errors.New("unsupported corpus format")

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("corpus has no header row")

// LoadError reports a corpus source that is missing, unreadable or malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load corpus %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned by Search when the query is blank.
var ErrEmptyQuery = errors.New("empty search query")

// SourceError reports a failure to fetch or parse one of the catalog documents.
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

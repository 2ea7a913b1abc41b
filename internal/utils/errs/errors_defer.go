package errs

import (
	"errors"
	"fmt"
)

// Capture runs closeFunc and joins its error, if any, into *errPtr.
// Meant for deferred Close calls, the error already held in *errPtr is kept.
func Capture(errPtr *error, closeFunc func() error, msg string) {
	err := closeFunc()
	if err == nil {
		return
	}
	*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
}


package archive

import "fmt"

// EntryRejectedError is returned when an archive entry would be written outside its destination.
type EntryRejectedError struct {
	Entry  string
	Reason string
}

func (e *EntryRejectedError) Error() string {
	return fmt.Sprintf("archive entry %q rejected: %s", e.Entry, e.Reason)
}

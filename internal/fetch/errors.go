package fetch

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists reports that the install destination is already present.
// Callers treat this as "nothing to do" rather than a hard failure.
var ErrAlreadyExists = errors.New("already exists")

// StatusError reports a download request rejected by the remote server.
type StatusError struct {
	URL    string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %s for %s", e.Status, e.URL)
}

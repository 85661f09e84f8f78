package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrChecksFailed is matched by every FailedError.
var ErrChecksFailed = errors.New("critical checks failed")

// FailedError carries the IDs of failed checks out of a run.
type FailedError struct {
	Checks []string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%d critical check(s) failed: %s", len(e.Checks), strings.Join(e.Checks, ", "))
}

// Unwrap lets errors.Is match ErrChecksFailed.
func (e *FailedError) Unwrap() error {
	return ErrChecksFailed
}

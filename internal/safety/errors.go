package safety

import (
	"errors"
	"fmt"
)

// ErrUnsafePath is the sentinel matched by every SecurityError. Callers use
// errors.Is to distinguish a rejected path from ordinary I/O failures.
var ErrUnsafePath = errors.New("unsafe path")

// SecurityError reports a path rejected by the validator.
type SecurityError struct {
	Path   string
	Rule   Rule
	Reason string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security error: rejected path %q: %s", e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrUnsafePath.
func (e *SecurityError) Unwrap() error {
	return ErrUnsafePath
}

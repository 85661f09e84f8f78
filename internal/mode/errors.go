package mode

import "errors"

// ErrNoContext is matched by every DetectionError.
var ErrNoContext = errors.New("no framework context found")

// DetectionError is returned when neither deployment context is present.
// Its message names both contexts so the caller can fix the working directory.
type DetectionError struct{}

func (e *DetectionError) Error() string {
	return "mode detection error: no framework context found in the working directory; " +
		"expected either repository mode (" + FrameworkDir + "/" + RootFile + ", run from the source checkout) " +
		"or installed mode (" + RootFile + " in the current directory, run from the installed copy)"
}

// Unwrap lets errors.Is match ErrNoContext.
func (e *DetectionError) Unwrap() error {
	return ErrNoContext
}

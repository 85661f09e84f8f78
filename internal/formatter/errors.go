package formatter

import "errors"

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

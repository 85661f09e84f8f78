// Package embedded holds default configuration compiled into the fwcheck
// binary. It is used when no allow-list is configured.
package embedded

import _ "embed"

// AllowedToolsYAML is the default tool allow-list, in the same format
// accepted by --tools-file.
//
//go:embed allowed_tools.yaml
var AllowedToolsYAML []byte

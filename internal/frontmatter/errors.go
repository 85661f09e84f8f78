package frontmatter

import "errors"

// Sentinel errors for front matter parsing. Callers match with errors.Is.
var (
	// ErrNoFrontmatter is returned when the file does not open with "---".
	ErrNoFrontmatter = errors.New("file does not start with a --- front matter block")

	// ErrUnterminated is returned when the closing "---" is missing.
	ErrUnterminated = errors.New("front matter block is not closed with ---")

	// ErrInvalidYAML is returned when the block is not a YAML mapping.
	ErrInvalidYAML = errors.New("front matter is not valid YAML")
)

package safety

// Builder composes the active mode's prefix with relative paths. It is the
// sole sanctioned way to obtain a path that may be opened.
type Builder struct {
	prefix string
}

// NewBuilder captures prefix for the lifetime of the builder.
func NewBuilder(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Build returns prefix+rel unchanged, or a *SecurityError if the joined path
// is rejected. The prefix is validated together with rel, so a bad prefix can
// never slip through.
func (b *Builder) Build(rel string) (string, error) {
	v := Validate(b.prefix + rel)
	if err := v.Err(); err != nil {
		return "", err
	}
	return v.Path, nil
}

// Package formatter renders validation runs and check catalogs.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/report"
)

// Output format names accepted by --output.
const (
	Text     = "text"
	JSON     = "json"
	JSONL    = "jsonl"
	Markdown = "markdown"
)

// Names lists the supported formats in help order.
var Names = []string{Text, JSON, JSONL, Markdown}

// Report is everything a formatter needs to render one run.
type Report struct {
	Mode           mode.ExecutionMode `json:"mode"`
	CatalogVersion string             `json:"catalog_version"`
	Outcomes       []check.Outcome    `json:"outcomes"`
	Summary        report.Summary     `json:"summary"`
}

// Formatter renders a Report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// Options tunes the formatters that support it.
type Options struct {
	// Color enables ANSI colors in text output.
	Color bool
}

// New returns the formatter registered under name.
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Text:
		return &TextFormatter{Color: opts.Color}, nil
	case JSON:
		return NewJSONFormatter(), nil
	case JSONL:
		return NewJSONLFormatter(), nil
	case Markdown, "md":
		return NewMarkdownFormatter(), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Names, ", "))
}

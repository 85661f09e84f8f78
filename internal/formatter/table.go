package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/report"
)

// Table formats columnar output using tabwriter.
type Table struct {
	w             *tabwriter.Writer
	headers       []string
	maxWidth      map[int]int // column index -> max width (0 = unlimited)
	headerWritten bool
}

// NewTable creates a table that writes to w with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{
		w:        tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers:  headers,
		maxWidth: make(map[int]int),
	}
}

// SetMaxWidth sets the maximum display width for a column (0-indexed).
// Values exceeding the limit are truncated with "...".
func (t *Table) SetMaxWidth(col, width int) *Table {
	t.maxWidth[col] = width
	return t
}

// AddRow appends a data row. Extra values beyond the header count are ignored;
// missing values are filled with empty strings.
func (t *Table) AddRow(values ...string) {
	if !t.headerWritten {
		t.headerWritten = true
		t.writeLine(t.headers)
		rule := make([]string, len(t.headers))
		for i, h := range t.headers {
			rule[i] = strings.Repeat("-", len(h))
		}
		t.writeLine(rule)
	}

	cells := make([]string, len(t.headers))
	for i := range cells {
		if i < len(values) {
			cells[i] = t.truncate(i, values[i])
		}
	}
	t.writeLine(cells)
}

// Render flushes the underlying tabwriter. Must be called after all AddRow calls.
func (t *Table) Render() error {
	return t.w.Flush()
}

func (t *Table) writeLine(cells []string) {
	//nolint:errcheck // surfaced by Render
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *Table) truncate(col int, s string) string {
	max, ok := t.maxWidth[col]
	if !ok || max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// CategoryTable writes the per-category pass/fail/warn breakdown.
func CategoryTable(w io.Writer, s report.Summary) error {
	tbl := NewTable(w, "CATEGORY", "PASSED", "FAILED", "WARNED", "TOTAL")
	for _, c := range s.Categories {
		tbl.AddRow(string(c.Category), strconv.Itoa(c.Passed), strconv.Itoa(c.Failed), strconv.Itoa(c.Warned), strconv.Itoa(c.Total()))
	}
	return tbl.Render()
}

// CatalogTable lists check definitions without running them.
func CatalogTable(w io.Writer, defs []check.Definition) error {
	tbl := NewTable(w, "ID", "CATEGORY", "SEVERITY", "TARGET")
	tbl.SetMaxWidth(3, 60)
	for _, d := range defs {
		tbl.AddRow(d.ID, string(d.Category), string(d.Severity), d.Target)
	}
	return tbl.Render()
}

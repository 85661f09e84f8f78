package formatter

import (
	"encoding/json"
	"io"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/report"
)

// Record types written by the JSONL formatter.
const (
	RecordOutcome = "outcome"
	RecordSummary = "summary"
)

// JSONLFormatter writes one JSON object per outcome, in execution order,
// followed by a single summary object.
type JSONLFormatter struct{}

// NewJSONLFormatter creates a new JSONL formatter.
func NewJSONLFormatter() *JSONLFormatter {
	return &JSONLFormatter{}
}

type jsonlOutcome struct {
	Type string `json:"type"`
	check.Outcome
}

type jsonlSummary struct {
	Type           string             `json:"type"`
	Mode           mode.ExecutionMode `json:"mode"`
	CatalogVersion string             `json:"catalog_version"`
	report.Summary
}

// Format writes the report as JSON lines.
func (jf *JSONLFormatter) Format(w io.Writer, r *Report) error {
	encoder := newEncoder(w)
	for _, o := range r.Outcomes {
		if err := encoder.Encode(jsonlOutcome{Type: RecordOutcome, Outcome: o}); err != nil {
			return err
		}
	}
	return encoder.Encode(jsonlSummary{
		Type:           RecordSummary,
		Mode:           r.Mode,
		CatalogVersion: r.CatalogVersion,
		Summary:        r.Summary,
	})
}

// JSONFormatter writes the whole report as one indented JSON document.
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a JSON formatter with two-space indentation.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

// Format writes the report as a JSON document.
func (jf *JSONFormatter) Format(w io.Writer, r *Report) error {
	encoder := newEncoder(w)
	if jf.Indent != "" {
		encoder.SetIndent("", jf.Indent)
	}
	out := *r
	if out.Outcomes == nil {
		out.Outcomes = []check.Outcome{}
	}
	return encoder.Encode(out)
}

// CatalogJSON writes check definitions as a JSON array.
func CatalogJSON(w io.Writer, defs []check.Definition) error {
	encoder := newEncoder(w)
	encoder.SetIndent("", "  ")
	if defs == nil {
		defs = []check.Definition{}
	}
	return encoder.Encode(defs)
}

func newEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false) // keep < > & in messages readable
	return encoder
}

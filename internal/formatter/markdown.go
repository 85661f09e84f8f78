package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/boshu2/fwcheck/internal/check"
)

// MarkdownFormatter writes a report suitable for pull request comments and
// CI job summaries.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as markdown.
func (mf *MarkdownFormatter) Format(w io.Writer, r *Report) error {
	tmpl, err := template.New("report").Funcs(mf.templateFuncs()).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return tmpl.Execute(w, r)
}

func (mf *MarkdownFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"icon": func(s check.Status) string {
			return StatusIcon(s)
		},
		"code": func(s string) string {
			return "`" + strings.ReplaceAll(s, "`", "'") + "`"
		},
		"cell": func(s string) string {
			s = strings.ReplaceAll(s, "|", `\|`)
			return strings.ReplaceAll(s, "\n", " ")
		},
		"hasContent": func(s []string) bool {
			return len(s) > 0
		},
	}
}

const markdownTemplate = `# fwcheck report

**Mode:** {{ .Mode }}
**Catalog:** v{{ .CatalogVersion }}
**Result:** {{ .Summary.Status }} ({{ .Summary.Line }})

{{- if .Summary.Categories }}

## Categories

| Category | Passed | Failed | Warned |
|----------|--------|--------|--------|
{{- range .Summary.Categories }}
| {{ .Category }} | {{ .Passed }} | {{ .Failed }} | {{ .Warned }} |
{{- end }}
{{- end }}

{{- if hasContent .Summary.FailedChecks }}

## Failed Checks

{{- range .Summary.FailedChecks }}
- {{ code . }}
{{- end }}
{{- end }}

{{- if hasContent .Summary.WarnedChecks }}

## Warnings

{{- range .Summary.WarnedChecks }}
- {{ code . }}
{{- end }}
{{- end }}

{{- if .Outcomes }}

## Checks

| | Check | Target | Message |
|-|-------|--------|---------|
{{- range .Outcomes }}
| {{ icon .Status }} | {{ code .CheckID }} | {{ code .Target }} | {{ cell .Message }} |
{{- end }}
{{- end }}
`

package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/boshu2/fwcheck/internal/check"
)

// TextFormatter is the default human-readable report: one line per outcome,
// a category breakdown, the failing check IDs and a summary line.
type TextFormatter struct {
	Color bool
}

// StatusIcon returns the display icon for an outcome status.
func StatusIcon(status check.Status) string {
	switch status {
	case check.StatusPass:
		return "✓"
	case check.StatusWarn:
		return "!"
	case check.StatusFail:
		return "✗"
	}
	return "?"
}

// Format writes the full text report.
func (tf *TextFormatter) Format(w io.Writer, r *Report) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "fwcheck validate: %s\n", r.Mode)
	fmt.Fprintln(&buf, strings.Repeat("─", 16))

	width := 0
	for _, o := range r.Outcomes {
		if len(o.CheckID) > width {
			width = len(o.CheckID)
		}
	}
	for _, o := range r.Outcomes {
		buf.WriteString(tf.line(o, width))
	}

	if len(r.Summary.Categories) > 0 {
		fmt.Fprintln(&buf)
		if err := CategoryTable(&buf, r.Summary); err != nil {
			return err
		}
	}

	tf.itemize(&buf, "Failed checks:", r.Summary.FailedChecks, color.FgRed)
	tf.itemize(&buf, "Warnings:", r.Summary.WarnedChecks, color.FgYellow)

	fmt.Fprintln(&buf)
	result := tf.paint(color.FgGreen, r.Summary.Status)
	if r.Summary.Failed > 0 {
		result = tf.paint(color.FgRed, r.Summary.Status)
	}
	fmt.Fprintf(&buf, "%s: %s\n", result, r.Summary.Line())

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteOutcome writes a single outcome line. Used for streaming progress.
func (tf *TextFormatter) WriteOutcome(w io.Writer, o check.Outcome) error {
	_, err := io.WriteString(w, tf.line(o, len(o.CheckID)))
	return err
}

func (tf *TextFormatter) line(o check.Outcome, width int) string {
	icon := StatusIcon(o.Status)
	switch o.Status {
	case check.StatusPass:
		icon = tf.paint(color.FgGreen, icon)
	case check.StatusWarn:
		icon = tf.paint(color.FgYellow, icon)
	case check.StatusFail:
		icon = tf.paint(color.FgRed, icon)
	}
	if o.Message == "" {
		return fmt.Sprintf("%s %s\n", icon, o.CheckID)
	}
	padding := strings.Repeat(" ", max(width-len(o.CheckID), 0))
	return fmt.Sprintf("%s %s%s  %s\n", icon, o.CheckID, padding, o.Message)
}

func (tf *TextFormatter) itemize(buf *bytes.Buffer, title string, ids []string, attr color.Attribute) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, tf.paint(attr, title))
	for _, id := range ids {
		fmt.Fprintf(buf, "  - %s\n", id)
	}
}

func (tf *TextFormatter) paint(attr color.Attribute, s string) string {
	if !tf.Color {
		return s
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}


// Package report folds an outcome sequence into a summary and decides the
// process exit status.
package report

import (
	"fmt"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
)

// Exit codes consumed by CI and shell callers.
const (
	ExitOK = 0
	// ExitSecurity is used when a path was rejected.
	ExitSecurity = 1
	// ExitMode is used when no framework context was found. It shares the
	// numeric value with ExitSecurity; the printed message differs.
	ExitMode = 1
	// ExitFailed is used when one or more critical checks failed.
	ExitFailed = 2
)

// Overall run status.
const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

// CategoryTally counts outcomes within one category.
type CategoryTally struct {
	Category check.Category `json:"category"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Warned   int            `json:"warned"`
}

// Total returns the number of outcomes in the category.
func (c CategoryTally) Total() int {
	return c.Passed + c.Failed + c.Warned
}

// Summary is derived from an outcome sequence; it is never stored on its own.
type Summary struct {
	Total          int             `json:"total"`
	Passed         int             `json:"passed"`
	Failed         int             `json:"failed"`
	Warned         int             `json:"warned"`
	FailedChecks   []string        `json:"failed_checks"`
	WarnedChecks   []string        `json:"warned_checks"`
	Categories     []CategoryTally `json:"categories"`
	Status         string          `json:"status"`
	ShortCircuited bool            `json:"short_circuited,omitempty"`
}

// Summarize folds outcomes into a Summary. It does not modify outcomes.
// Categories appear in execution order and only when they have outcomes.
func Summarize(outcomes []check.Outcome) Summary {
	s := Summary{
		FailedChecks: []string{},
		WarnedChecks: []string{},
		Categories:   []CategoryTally{},
	}
	tallies := make(map[check.Category]*CategoryTally)

	for _, o := range outcomes {
		t, ok := tallies[o.Category]
		if !ok {
			t = &CategoryTally{Category: o.Category}
			tallies[o.Category] = t
		}
		switch o.Status {
		case check.StatusPass:
			s.Passed++
			t.Passed++
		case check.StatusFail:
			s.Failed++
			t.Failed++
			s.FailedChecks = append(s.FailedChecks, o.CheckID)
		case check.StatusWarn:
			s.Warned++
			t.Warned++
			s.WarnedChecks = append(s.WarnedChecks, o.CheckID)
		}
	}
	s.Total = s.Passed + s.Failed + s.Warned

	for _, cat := range check.Categories {
		if t, ok := tallies[cat]; ok {
			s.Categories = append(s.Categories, *t)
			delete(tallies, cat)
		}
	}
	// Categories outside the fixed order, if a custom catalog used any.
	for _, o := range outcomes {
		if t, ok := tallies[o.Category]; ok {
			s.Categories = append(s.Categories, *t)
			delete(tallies, o.Category)
		}
	}

	s.Status = StatusPassed
	if s.Failed > 0 {
		s.Status = StatusFailed
	}
	return s
}

// ExitCode maps a summary to the process exit status. Warnings never change
// it; any failure does.
func ExitCode(s Summary) int {
	if s.Failed > 0 {
		return ExitFailed
	}
	return ExitOK
}

// Err returns a *FailedError when the summary has failures, nil otherwise.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return &FailedError{Checks: append([]string(nil), s.FailedChecks...)}
}

// Line builds the one-line human summary, e.g.
// "42/45 checks passed, 2 warnings, 1 failed".
func (s Summary) Line() string {
	parts := []string{fmt.Sprintf("%d/%d checks passed", s.Passed, s.Total)}
	if s.Warned > 0 {
		parts = append(parts, plural(s.Warned, "warning"))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	line := strings.Join(parts, ", ")
	if s.ShortCircuited {
		line += " (stopped after structure checks)"
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

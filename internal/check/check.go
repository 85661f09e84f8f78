// Package check defines the vocabulary shared by the catalog, the
// orchestrator and the reporter: what a check is, what it looks at, and
// what it produced.
package check

import (
	"io/fs"
)

// Category groups checks. Categories execute in the order of Categories.
type Category string

const (
	Structure     Category = "structure"
	Agent         Category = "agent"
	Command       Category = "command"
	Integration   Category = "integration"
	Documentation Category = "documentation"
)

// Categories is the fixed execution order.
var Categories = []Category{Structure, Agent, Command, Integration, Documentation}

// Severity decides whether a failed assertion fails the run.
type Severity string

const (
	Critical Severity = "critical"
	Warning  Severity = "warning"
)

// TargetKind tells the orchestrator what to load for a check.
type TargetKind int

const (
	// File targets are loaded with their content.
	File TargetKind = iota
	// Dir targets are loaded with their entries.
	Dir
)

// Status is the result of one executed check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
)

// Subject is everything the orchestrator read for one target. Assertions see
// only the Subject, never the filesystem.
type Subject struct {
	// Target is the relative path from the definition.
	Target string
	// Path is the prefixed path the Builder produced.
	Path string
	// Info is nil when the target does not exist.
	Info fs.FileInfo
	// Content holds file bytes for File targets.
	Content []byte
	// Entries holds directory entries for Dir targets.
	Entries []fs.DirEntry
	// Err is the first load error, if any.
	Err error
}

// Exists reports whether the target was found.
func (s Subject) Exists() bool {
	return s.Info != nil
}

// Assertion inspects a subject and returns nil when the check holds. The
// returned error's message becomes the outcome message.
type Assertion func(Subject) error

// Definition is one row of the catalog.
type Definition struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Target      string     `json:"target"`
	Kind        TargetKind `json:"-"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description"`
	// Root marks structure checks guarding the framework root. A failed root
	// check stops the run after the root checks complete.
	Root   bool      `json:"root,omitempty"`
	Assert Assertion `json:"-"`
}

// Outcome is the immutable record of one executed check.
type Outcome struct {
	CheckID  string   `json:"check_id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Target   string   `json:"target"`
	Status   Status   `json:"status"`
	Message  string   `json:"message,omitempty"`
}

// Evaluate runs def's assertion against subject and builds the outcome. A
// failed assertion maps to fail or warn by the definition's severity only.
func Evaluate(def Definition, subject Subject) Outcome {
	out := Outcome{
		CheckID:  def.ID,
		Category: def.Category,
		Severity: def.Severity,
		Target:   def.Target,
		Status:   StatusPass,
	}
	if err := def.Assert(subject); err != nil {
		out.Message = err.Error()
		if def.Severity == Critical {
			out.Status = StatusFail
		} else {
			out.Status = StatusWarn
		}
	}
	return out
}

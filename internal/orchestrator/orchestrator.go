// Package orchestrator executes a catalog against a framework tree and
// returns the ordered outcome sequence.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/boshu2/fwcheck/internal/catalog"
	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/framework"
	"github.com/boshu2/fwcheck/internal/safety"
)

// Options tunes a run.
type Options struct {
	// OnOutcome, if set, is called after each outcome is recorded.
	OnOutcome func(check.Outcome)
}

// Result is what one run produced.
type Result struct {
	Outcomes []check.Outcome
	// Planned is the number of checks in the catalog.
	Planned int
	// ShortCircuited is set when a root structure check failed and the
	// remaining checks were skipped.
	ShortCircuited bool
}

// Run resolves every target in cat, then executes the checks in catalog
// order. A rejected path returns the *safety.SecurityError with no outcomes.
// Failed assertions never stop the run, except that a failed root structure
// check stops it once all root checks have executed.
func Run(fsys *framework.FS, cat *catalog.Catalog, opts Options) (Result, error) {
	if err := cat.Resolve(fsys); err != nil {
		return Result{}, err
	}

	defs := cat.Checks()
	lastRoot := -1
	for i, d := range defs {
		if d.Root {
			lastRoot = i
		}
	}

	res := Result{Planned: len(defs)}
	outcomes := make([]check.Outcome, 0, len(defs))
	loader := newLoader(fsys)
	rootFailed := false

	for i, d := range defs {
		subject, err := loader.load(d)
		if err != nil {
			return Result{}, err
		}

		out := check.Evaluate(d, subject)
		outcomes = append(outcomes, out)
		if opts.OnOutcome != nil {
			opts.OnOutcome(out)
		}

		if d.Root && out.Status == check.StatusFail {
			rootFailed = true
		}
		if i == lastRoot && rootFailed {
			res.ShortCircuited = true
			break
		}
	}

	res.Outcomes = outcomes
	return res, nil
}

type subjectKey struct {
	target string
	kind   check.TargetKind
}

// loader reads each target once per run. Checks on the same file share the
// loaded subject.
type loader struct {
	fsys  *framework.FS
	cache map[subjectKey]check.Subject
}

func newLoader(fsys *framework.FS) *loader {
	return &loader{fsys: fsys, cache: make(map[subjectKey]check.Subject)}
}

// load returns the subject for d. Only security errors are returned; every
// other failure is recorded on the subject for the assertion to judge.
func (l *loader) load(d check.Definition) (check.Subject, error) {
	key := subjectKey{target: d.Target, kind: d.Kind}
	if s, ok := l.cache[key]; ok {
		return s, nil
	}

	path, err := l.fsys.Resolve(d.Target)
	if err != nil {
		return check.Subject{}, fmt.Errorf("check %s: %w", d.ID, err)
	}
	s := check.Subject{Target: d.Target, Path: path}

	info, err := l.fsys.Stat(d.Target)
	switch {
	case isSecurity(err):
		return check.Subject{}, err
	case err != nil:
		s.Err = err
	default:
		s.Info = info
		switch {
		case d.Kind == check.Dir && info.IsDir():
			s.Entries, s.Err = l.fsys.ReadDir(d.Target)
		case d.Kind == check.File && info.Mode().IsRegular():
			s.Content, s.Err = l.fsys.ReadFile(d.Target)
		}
		if isSecurity(s.Err) {
			return check.Subject{}, s.Err
		}
	}

	l.cache[key] = s
	return s, nil
}

func isSecurity(err error) bool {
	return err != nil && errors.Is(err, safety.ErrUnsafePath)
}

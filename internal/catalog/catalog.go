// Package catalog builds the ordered table of checks fwcheck runs.
//
// The shape of the table is static: a fixed list of structure, integration
// and documentation checks plus fixed per-item tables for agents and
// commands. The size is not: Build discovers the agent, command and
// documentation files actually present and expands the per-item tables over
// them, so the total count depends on the tree being checked.
package catalog

import (
	"fmt"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/framework"
)

// Version identifies the revision of the check tables. Bump it whenever a
// check is added, removed or changes severity.
const Version = "3"

// Catalog is the expanded, ordered list of checks for one run.
type Catalog struct {
	// Agents, Commands and Docs are the discovered relative paths.
	Agents   []string
	Commands []string
	Docs     []string

	checks []check.Definition
}

// New builds a catalog from explicit definitions. Definitions are reordered
// by category (stable within a category) to match execution order.
func New(defs []check.Definition) *Catalog {
	c := &Catalog{}
	for _, cat := range check.Categories {
		for _, d := range defs {
			if d.Category == cat {
				c.checks = append(c.checks, d)
			}
		}
	}
	return c
}

// Build discovers the framework's files through fsys and expands the check
// tables. Every target is resolved through the safe path builder before the
// catalog is returned; the first rejected path aborts with its
// *safety.SecurityError.
func Build(fsys *framework.FS, rules Rules) (*Catalog, error) {
	layout := rules.Layout

	agents, err := fsys.MarkdownFiles(layout.AgentsDir)
	if err != nil {
		return nil, fmt.Errorf("discover agents: %w", err)
	}
	commands, err := fsys.MarkdownFiles(layout.CommandsDir)
	if err != nil {
		return nil, fmt.Errorf("discover commands: %w", err)
	}
	docs, err := fsys.MarkdownFiles(layout.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("discover docs: %w", err)
	}

	agentNames := make([]string, 0, len(agents))
	for _, a := range agents {
		agentNames = append(agentNames, framework.Stem(a))
	}
	refs := newAgentRefs(agentNames)

	var defs []check.Definition
	defs = append(defs, structureChecks(layout)...)
	for _, a := range agents {
		defs = append(defs, expand(check.Agent, agentChecks, item{Path: a, Stem: framework.Stem(a), Agents: refs}, rules)...)
	}
	for _, c := range commands {
		defs = append(defs, expand(check.Command, commandChecks, item{Path: c, Stem: framework.Stem(c), Agents: refs}, rules)...)
	}
	defs = append(defs, integrationChecks(rules, refs)...)
	defs = append(defs, documentationChecks(layout, docs)...)

	cat := &Catalog{
		Agents:   agents,
		Commands: commands,
		Docs:     docs,
		checks:   defs,
	}
	if err := cat.Resolve(fsys); err != nil {
		return nil, err
	}
	return cat, nil
}

// Resolve runs every target through the safe path builder and returns the
// first rejection.
func (c *Catalog) Resolve(fsys *framework.FS) error {
	for _, d := range c.checks {
		if _, err := fsys.Resolve(d.Target); err != nil {
			return fmt.Errorf("check %s: %w", d.ID, err)
		}
	}
	return nil
}

// Checks returns the definitions in execution order. The slice is a copy.
func (c *Catalog) Checks() []check.Definition {
	out := make([]check.Definition, len(c.checks))
	copy(out, c.checks)
	return out
}

// Len returns the number of checks.
func (c *Catalog) Len() int {
	return len(c.checks)
}

// Count returns the number of checks in a category.
func (c *Catalog) Count(cat check.Category) int {
	n := 0
	for _, d := range c.checks {
		if d.Category == cat {
			n++
		}
	}
	return n
}

// PerAgent is the number of checks each discovered agent file expands to.
func PerAgent() int {
	return len(agentChecks)
}

// PerCommand is the number of checks each discovered command file expands to.
func PerCommand() int {
	return len(commandChecks)
}

// item is one discovered agent or command file.
type item struct {
	Path   string
	Stem   string
	Agents []agentRef
}

// itemCheck is one row of a per-item table.
type itemCheck struct {
	Name        string
	Kind        check.TargetKind
	Severity    check.Severity
	Description string
	Assert      func(it item, rules Rules) check.Assertion
}

func expand(cat check.Category, table []itemCheck, it item, rules Rules) []check.Definition {
	defs := make([]check.Definition, 0, len(table))
	for _, row := range table {
		defs = append(defs, check.Definition{
			ID:          fmt.Sprintf("%s/%s/%s", cat, it.Stem, row.Name),
			Category:    cat,
			Target:      it.Path,
			Kind:        row.Kind,
			Severity:    row.Severity,
			Description: row.Description,
			Assert:      row.Assert(it, rules),
		})
	}
	return defs
}

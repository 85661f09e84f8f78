package catalog

import (
	"fmt"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/mode"
)

// integrationChecks verifies the root instruction file: one check per
// required section plus the agent index.
func integrationChecks(rules Rules, agents []agentRef) []check.Definition {
	defs := make([]check.Definition, 0, len(rules.Sections)+1)
	for _, sec := range rules.Sections {
		defs = append(defs, check.Definition{
			ID:          "integration/section-" + sec.ID,
			Category:    check.Integration,
			Target:      mode.RootFile,
			Kind:        check.File,
			Severity:    check.Critical,
			Description: fmt.Sprintf("%s has a %s section", mode.RootFile, sec.Title),
			Assert:      hasSection(sec),
		})
	}
	defs = append(defs, check.Definition{
		ID:          "integration/agents-indexed",
		Category:    check.Integration,
		Target:      mode.RootFile,
		Kind:        check.File,
		Severity:    check.Warning,
		Description: fmt.Sprintf("%s mentions every agent", mode.RootFile),
		Assert:      indexesAgents(agents),
	})
	return defs
}

func hasSection(sec Section) check.Assertion {
	return func(s check.Subject) error {
		if err := requireFile(s); err != nil {
			return err
		}
		for _, h := range headings(string(s.Content)) {
			lower := strings.ToLower(h)
			for _, kw := range sec.Keywords {
				if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
					return nil
				}
			}
		}
		return fmt.Errorf("no heading for the %s section (looked for: %s)", sec.Title, strings.Join(sec.Keywords, ", "))
	}
}

// indexesAgents passes vacuously when no agents were discovered.
func indexesAgents(agents []agentRef) check.Assertion {
	return func(s check.Subject) error {
		if err := requireFile(s); err != nil {
			return err
		}
		text := string(s.Content)
		var missing []string
		for _, a := range agents {
			if !a.mentionedIn(text) {
				missing = append(missing, a.Name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("agents not mentioned: %s", strings.Join(missing, ", "))
		}
		return nil
	}
}

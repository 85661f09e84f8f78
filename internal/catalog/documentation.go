package catalog

import (
	"errors"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/framework"
)

// documentationChecks covers the README, the example and template
// directories, and one check per discovered documentation page.
func documentationChecks(layout Layout, pages []string) []check.Definition {
	defs := []check.Definition{
		{
			ID:          "docs/readme",
			Category:    check.Documentation,
			Target:      layout.Readme,
			Kind:        check.File,
			Severity:    check.Warning,
			Description: "README exists and is not empty",
			Assert:      nonEmptyFile,
		},
		{
			ID:          "docs/readme-title",
			Category:    check.Documentation,
			Target:      layout.Readme,
			Kind:        check.File,
			Severity:    check.Warning,
			Description: "README opens with a title heading",
			Assert:      startsWithTitle,
		},
		{
			ID:          "docs/examples",
			Category:    check.Documentation,
			Target:      layout.ExamplesDir,
			Kind:        check.Dir,
			Severity:    check.Warning,
			Description: "examples directory is populated",
			Assert:      dirHasEntries(false),
		},
		{
			ID:          "docs/templates",
			Category:    check.Documentation,
			Target:      layout.TemplatesDir,
			Kind:        check.Dir,
			Severity:    check.Warning,
			Description: "templates directory is populated",
			Assert:      dirHasEntries(false),
		},
	}
	for _, p := range pages {
		defs = append(defs, check.Definition{
			ID:          "docs/page/" + framework.Stem(p),
			Category:    check.Documentation,
			Target:      p,
			Kind:        check.File,
			Severity:    check.Warning,
			Description: "documentation page is not empty",
			Assert:      nonEmptyFile,
		})
	}
	return defs
}

func startsWithTitle(s check.Subject) error {
	if err := requireFile(s); err != nil {
		return err
	}
	for _, line := range strings.Split(string(s.Content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			return nil
		}
		break
	}
	return errors.New("first non-empty line is not a level-1 heading")
}

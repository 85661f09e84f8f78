package catalog

import (
	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/mode"
)

// structureChecks is the fixed structure table. Root checks come first so
// the orchestrator can stop right after them.
func structureChecks(layout Layout) []check.Definition {
	return []check.Definition{
		{
			ID:          "structure/claude-md",
			Category:    check.Structure,
			Target:      mode.RootFile,
			Kind:        check.File,
			Severity:    check.Critical,
			Description: "root instruction file exists",
			Root:        true,
			Assert:      fileExists,
		},
		{
			ID:          "structure/agents-dir",
			Category:    check.Structure,
			Target:      layout.AgentsDir,
			Kind:        check.Dir,
			Severity:    check.Critical,
			Description: "agents directory exists",
			Root:        true,
			Assert:      requireDir,
		},
		{
			ID:          "structure/commands-dir",
			Category:    check.Structure,
			Target:      layout.CommandsDir,
			Kind:        check.Dir,
			Severity:    check.Critical,
			Description: "commands directory exists",
			Root:        true,
			Assert:      requireDir,
		},
		{
			ID:          "structure/claude-md-content",
			Category:    check.Structure,
			Target:      mode.RootFile,
			Kind:        check.File,
			Severity:    check.Critical,
			Description: "root instruction file is not empty",
			Assert:      nonEmptyFile,
		},
		{
			ID:          "structure/agents-populated",
			Category:    check.Structure,
			Target:      layout.AgentsDir,
			Kind:        check.Dir,
			Severity:    check.Critical,
			Description: "agents directory holds at least one definition",
			Assert:      dirHasEntries(true),
		},
		{
			ID:          "structure/commands-populated",
			Category:    check.Structure,
			Target:      layout.CommandsDir,
			Kind:        check.Dir,
			Severity:    check.Critical,
			Description: "commands directory holds at least one definition",
			Assert:      dirHasEntries(true),
		},
	}
}

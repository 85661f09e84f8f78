package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boshu2/fwcheck/internal/catalog"
	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/formatter"
	"github.com/boshu2/fwcheck/internal/framework"
	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/orchestrator"
	"github.com/boshu2/fwcheck/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run every check against the framework",
	Long: `Detect the layout, build the check catalog and run it in order:
structure, agent, command, integration, documentation.

A missing CLAUDE.md, agents/ or commands/ stops the run after the
structure checks. A path that escapes the framework aborts before any
check runs.

Examples:
  fwcheck validate
  fwcheck validate -o json
  fwcheck validate -v --tools-file tools.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fsys, m, err := detectFramework()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	f, err := formatter.New(cfg.Output, formatter.Options{Color: useColor(cfg, out)})
	if err != nil {
		return err
	}
	VerbosePrintf("mode: %s\n", m)

	cat, err := catalog.Build(fsys, rules)
	if err != nil {
		return err
	}
	VerbosePrintf("catalog v%s: %d checks (%d agents, %d commands, %d doc pages)\n",
		catalog.Version, cat.Len(), len(cat.Agents), len(cat.Commands), len(cat.Docs))

	var opts orchestrator.Options
	if verbose {
		stream := &formatter.TextFormatter{}
		errOut := cmd.ErrOrStderr()
		opts.OnOutcome = func(o check.Outcome) {
			_ = stream.WriteOutcome(errOut, o)
		}
	}
	res, err := orchestrator.Run(fsys, cat, opts)
	if err != nil {
		return err
	}
	if res.ShortCircuited {
		VerbosePrintf("stopped after structure checks: %d of %d checks ran\n", len(res.Outcomes), res.Planned)
	}

	summary := report.Summarize(res.Outcomes)
	summary.ShortCircuited = res.ShortCircuited
	r := &formatter.Report{
		Mode:           m,
		CatalogVersion: catalog.Version,
		Outcomes:       res.Outcomes,
		Summary:        summary,
	}
	if err := f.Format(out, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return summary.Err()
}

// detectFramework resolves the deployment context of the working directory.
// It runs before configuration is read so no other file is touched first.
func detectFramework() (*framework.FS, mode.ExecutionMode, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, mode.ExecutionMode{}, fmt.Errorf("get working directory: %w", err)
	}
	root := os.DirFS(cwd)
	m, err := mode.Detect(root)
	if err != nil {
		return nil, mode.ExecutionMode{}, err
	}
	return framework.New(root, m), m, nil
}

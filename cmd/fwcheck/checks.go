package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/fwcheck/internal/catalog"
	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/formatter"
)

var checksCategory string

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the checks without running them",
	Long: `Build the check catalog for the detected framework and list it in
execution order. Nothing is asserted.

Examples:
  fwcheck checks
  fwcheck checks --category agent
  fwcheck checks -o json`,
	Args: cobra.NoArgs,
	RunE: runChecks,
}

func init() {
	checksCmd.Flags().StringVar(&checksCategory, "category", "", "Only list checks in this category")
	rootCmd.AddCommand(checksCmd)
}

func runChecks(cmd *cobra.Command, args []string) error {
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
	cat, err := catalog.Build(fsys, rules)
	if err != nil {
		return err
	}

	defs := cat.Checks()
	if checksCategory != "" {
		defs = filterCategory(defs, check.Category(strings.ToLower(checksCategory)))
	}

	out := cmd.OutOrStdout()
	if strings.EqualFold(cfg.Output, formatter.JSON) {
		return formatter.CatalogJSON(out, defs)
	}
	if err := formatter.CatalogTable(out, defs); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d checks (catalog v%s, %s)\n", len(defs), catalog.Version, m)
	return nil
}

func filterCategory(defs []check.Definition, cat check.Category) []check.Definition {
	var kept []check.Definition
	for _, d := range defs {
		if d.Category == cat {
			kept = append(kept, d)
		}
	}
	return kept
}

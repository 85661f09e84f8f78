package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/fwcheck/internal/config"
	"github.com/boshu2/fwcheck/internal/formatter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration with sources",
	Long: `Show the configuration fwcheck would run with and where each value came from.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (FWCHECK_*)
  3. Project config (.fwcheck/config.yaml, or FWCHECK_CONFIG)
  4. Home config (~/.fwcheck/config.yaml)
  5. Defaults

Environment variables:
  FWCHECK_CONFIG          - Explicit project config path
  FWCHECK_OUTPUT          - Output format (text, json, jsonl, markdown)
  FWCHECK_VERBOSE         - Stream outcomes to stderr (true/1)
  FWCHECK_NO_COLOR        - Disable colored output (true/1)
  FWCHECK_TOOLS_FILE      - YAML allow-list file
  FWCHECK_ARGUMENT_TOKEN  - Token commands must reference (default: $ARGUMENTS)

Examples:
  fwcheck config
  fwcheck config -o json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	flags := changedFlags(cmd)
	resolved, err := config.Resolve(flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := flags.Output
	if format == "" {
		format, _ = resolved.Output.Value.(string)
	}
	if strings.EqualFold(format, formatter.JSON) {
		data, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, "fwcheck configuration")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Config files:")
	home, project := config.Paths()
	for _, f := range []struct{ label, path string }{{"Home:   ", home}, {"Project:", project}} {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Fprintf(out, "  ✓ %s %s\n", f.label, f.path)
		} else {
			fmt.Fprintf(out, "  ✗ %s %s (not found)\n", f.label, f.path)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Resolved values:")
	tbl := formatter.NewTable(out, "KEY", "VALUE", "SOURCE")
	tbl.SetMaxWidth(1, 60)
	for _, f := range resolved.Fields() {
		tbl.AddRow(f.Key, formatValue(f.Value), string(f.Source))
	}
	return tbl.Render()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case string:
		if val == "" {
			return "(unset)"
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/fwcheck/internal/formatter"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show the detected layout",
	Long: `Report whether the working directory is a repository checkout
(framework/CLAUDE.md) or an installed copy (CLAUDE.md), and the path
prefix every check target resolves under.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, m, err := detectFramework()
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if strings.EqualFold(cfg.Output, formatter.JSON) {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}
		fmt.Fprintf(out, "mode:   %s\n", m.Kind)
		prefix := m.Prefix
		if prefix == "" {
			prefix = "(none)"
		}
		fmt.Fprintf(out, "prefix: %s\n", prefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

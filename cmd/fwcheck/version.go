package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/boshu2/fwcheck/internal/catalog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version, catalog version, build information, and runtime details.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fwcheck version %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Catalog version: %s\n", catalog.Version)
		fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/boshu2/fwcheck/internal/config"
	"github.com/boshu2/fwcheck/internal/formatter"
	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/report"
	"github.com/boshu2/fwcheck/internal/safety"
)

var (
	// Global flags
	verbose   bool
	output    string
	cfgFile   string
	noColor   bool
	toolsFile string

	// verboseOut receives VerbosePrintf output.
	verboseOut io.Writer = os.Stderr
)

// rootCmd represents the base command. Without a subcommand it validates
// the framework in the working directory.
var rootCmd = &cobra.Command{
	Use:   "fwcheck",
	Short: "Validate a Claude agent framework",
	Long: `fwcheck validates an agent framework: the CLAUDE.md instruction file,
agent definitions under agents/ and command definitions under commands/.

The framework is found in one of two layouts:
  repository   framework/CLAUDE.md (a source checkout)
  installed    CLAUDE.md in the working directory

Exit status:
  0  all critical checks passed (warnings allowed)
  1  a path was rejected, no framework was found, or usage error
  2  one or more critical checks failed

Commands:
  validate     Run every check (default)
  checks       List the checks without running them
  mode         Show the detected layout
  config       Show resolved configuration with sources
  version      Show version information`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
	RunE: runValidate,
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	// A nil slice makes cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	verboseOut = stderr
	if err := rootCmd.Execute(); err != nil {
		return reportError(stderr, err)
	}
	return report.ExitOK
}

// reportError prints err once and maps it to an exit code. Failed checks
// were already rendered in the report, so nothing more is printed for them.
func reportError(w io.Writer, err error) int {
	var (
		failed   *report.FailedError
		security *safety.SecurityError
		detect   *mode.DetectionError
	)
	switch {
	case errors.As(err, &failed):
		return report.ExitFailed
	case errors.As(err, &security):
		fmt.Fprintln(w, security.Error())
		return report.ExitSecurity
	case errors.As(err, &detect):
		fmt.Fprintln(w, detect.Error())
		return report.ExitMode
	default:
		fmt.Fprintf(w, "error: %v\n", err)
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Stream outcomes and diagnostics to stderr")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format ("+strings.Join(formatter.Names, ", ")+")")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .fwcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&toolsFile, "tools-file", "", "YAML file with the tool allow-list")

	for _, name := range []string{"verbose", "output", "no-color", "tools-file"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("FWCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// flagOverrides returns the flag and environment values bound through viper.
func flagOverrides() *config.Config {
	return &config.Config{
		Output:  viper.GetString("output"),
		Verbose: viper.GetBool("verbose"),
		NoColor: viper.GetBool("no-color"),
		Tools:   config.ToolsConfig{File: viper.GetString("tools-file")},
	}
}

// changedFlags returns only the flags set on the command line, for source
// attribution.
func changedFlags(cmd *cobra.Command) *config.Config {
	flags := cmd.Flags()
	cfg := &config.Config{}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = noColor
	}
	if flags.Changed("tools-file") {
		cfg.Tools.File = toolsFile
	}
	return cfg
}

// loadConfig resolves the effective configuration and applies its verbose
// setting to VerbosePrintf.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagOverrides())
	if err != nil {
		return nil, err
	}
	verbose = cfg.Verbose
	return cfg, nil
}

// useColor reports whether text output to w should be colored.
func useColor(cfg *config.Config, w io.Writer) bool {
	if cfg.NoColor || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// VerbosePrintf prints to stderr only when verbose mode is enabled, keeping
// stdout clean for the report.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(verboseOut, format, args...)
	}
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("FWCHECK_CONFIG", path)
}

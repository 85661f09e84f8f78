package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/boshu2/fwcheck/internal/config"
	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/report"
	"github.com/boshu2/fwcheck/internal/safety"
)

const (
	plannerAgent = `---
name: planner
description: Breaks work into steps
tools: Read, Grep
---
You plan work.
`
	reviewerAgent = `---
name: reviewer
description: Reviews diffs
tools: [Read, Glob]
---
You review work.
`
	planCommand = `---
description: Plan a task
allowed-tools: Read
argument-hint: <task>
---
Ask the planner agent to plan $ARGUMENTS.
`
	rootFile = `# Example Framework

Agents: planner, reviewer.

## Core Principles

Be careful.

## Workflow

Plan, then review.

## Instructions

Follow the workflow.
`
	// Checks produced by goodFiles: 6 structure, 2 agents, 1 command,
	// 4 integration, 5 documentation.
	goodTotal = 6 + 2*8 + 8 + 4 + 5
)

func goodFiles() map[string]string {
	return map[string]string{
		"CLAUDE.md":          rootFile,
		"agents/planner.md":  plannerAgent,
		"agents/reviewer.md": reviewerAgent,
		"commands/plan.md":   planCommand,
		"docs/guide.md":      "# Guide\n\nRead me.\n",
		"README.md":          "# Example\n\nA framework.\n",
		"examples/basic.md":  "example\n",
		"templates/agent.md": "template\n",
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return tmp
}

// isolate keeps the user's config and FWCHECK_* variables out of a test and
// restores flag state between runs of the shared root command.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FWCHECK_CONFIG", filepath.Join(home, "no-project.yaml"))
	for _, key := range []string{
		"FWCHECK_OUTPUT", "FWCHECK_VERBOSE", "FWCHECK_NO_COLOR",
		"FWCHECK_TOOLS_FILE", "FWCHECK_ARGUMENT_TOKEN",
	} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// setupFramework writes files under framework/ in a fresh working directory.
func setupFramework(t *testing.T, files map[string]string) string {
	t.Helper()
	isolate(t)
	tmp := chdirTemp(t)
	writeTree(t, filepath.Join(tmp, mode.FrameworkDir), files)
	return tmp
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestValidate_WellFormed(t *testing.T) {
	setupFramework(t, goodFiles())

	for _, args := range [][]string{nil, {"validate"}} {
		code, stdout, stderr := run(args...)
		if code != report.ExitOK {
			t.Fatalf("%v: exit = %d, stderr = %q\n%s", args, code, stderr, stdout)
		}
		want := fmt.Sprintf("PASSED: %d/%d checks passed", goodTotal, goodTotal)
		if !strings.Contains(stdout, want) {
			t.Errorf("%v: missing %q in:\n%s", args, want, stdout)
		}
		if !strings.Contains(stdout, "fwcheck validate: repository (framework/)") {
			t.Errorf("%v: missing mode header in:\n%s", args, stdout)
		}
		if stderr != "" {
			t.Errorf("%v: unexpected stderr %q", args, stderr)
		}
	}
}

func TestValidate_InstalledMode(t *testing.T) {
	isolate(t)
	tmp := chdirTemp(t)
	writeTree(t, tmp, goodFiles())

	code, stdout, _ := run()
	if code != report.ExitOK {
		t.Fatalf("exit = %d\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "fwcheck validate: installed") {
		t.Errorf("missing installed header:\n%s", stdout)
	}
}

func TestValidate_MissingFieldFails(t *testing.T) {
	files := goodFiles()
	files["agents/planner.md"] = "---\nname: planner\ntools: Read\n---\nYou plan work.\n"
	setupFramework(t, files)

	code, stdout, stderr := run()
	if code != report.ExitFailed {
		t.Fatalf("exit = %d, want %d\n%s", code, report.ExitFailed, stdout)
	}
	if !strings.Contains(stdout, "Failed checks:\n  - agent/planner/field-description") {
		t.Errorf("failed check not itemized:\n%s", stdout)
	}
	if !strings.Contains(stdout, "FAILED:") {
		t.Errorf("missing FAILED summary:\n%s", stdout)
	}
	if stderr != "" {
		t.Errorf("failed checks should only be reported on stdout, stderr = %q", stderr)
	}
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	files := goodFiles()
	delete(files, "README.md")
	setupFramework(t, files)

	code, stdout, _ := run()
	if code != report.ExitOK {
		t.Fatalf("exit = %d, want 0\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "2 warnings") || !strings.Contains(stdout, "PASSED:") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
}

func TestValidate_MissingDirectoriesShortCircuit(t *testing.T) {
	setupFramework(t, map[string]string{"CLAUDE.md": rootFile})

	code, stdout, _ := run()
	if code != report.ExitFailed {
		t.Fatalf("exit = %d, want %d\n%s", code, report.ExitFailed, stdout)
	}
	if !strings.Contains(stdout, "(stopped after structure checks)") {
		t.Errorf("short circuit not reported:\n%s", stdout)
	}
	if strings.Contains(stdout, "docs/readme") {
		t.Errorf("checks ran after the short circuit:\n%s", stdout)
	}
}

func TestValidate_NoFramework(t *testing.T) {
	isolate(t)
	chdirTemp(t)

	code, stdout, stderr := run()
	if code != report.ExitMode {
		t.Fatalf("exit = %d, want %d", code, report.ExitMode)
	}
	if stdout != "" {
		t.Errorf("no report expected, got:\n%s", stdout)
	}
	for _, want := range []string{"repository mode", "installed mode"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr %q does not mention %q", stderr, want)
		}
	}
	if strings.Count(strings.TrimSpace(stderr), "\n") != 0 {
		t.Errorf("expected a single message, got %q", stderr)
	}
}

func TestValidate_HostileFileNameAborts(t *testing.T) {
	files := goodFiles()
	files["commands/a;rm -f.md"] = planCommand
	setupFramework(t, files)

	code, stdout, stderr := run()
	if code != report.ExitSecurity {
		t.Fatalf("exit = %d, want %d\n%s", code, report.ExitSecurity, stdout)
	}
	if stdout != "" {
		t.Errorf("no report expected, got:\n%s", stdout)
	}
	if !strings.HasPrefix(stderr, "security error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestValidate_JSONOutput(t *testing.T) {
	setupFramework(t, goodFiles())

	code, stdout, _ := run("validate", "-o", "json")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	var got struct {
		Mode           mode.ExecutionMode `json:"mode"`
		CatalogVersion string             `json:"catalog_version"`
		Outcomes       []json.RawMessage  `json:"outcomes"`
		Summary        report.Summary     `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if got.Mode.Kind != mode.Repository || got.CatalogVersion == "" {
		t.Errorf("header = %+v %q", got.Mode, got.CatalogVersion)
	}
	if len(got.Outcomes) != goodTotal || got.Summary.Status != report.StatusPassed {
		t.Errorf("outcomes = %d, status = %s", len(got.Outcomes), got.Summary.Status)
	}
}

func TestValidate_OutputFromEnvironment(t *testing.T) {
	setupFramework(t, goodFiles())
	t.Setenv("FWCHECK_OUTPUT", "jsonl")

	code, stdout, _ := run()
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != goodTotal+1 {
		t.Fatalf("got %d JSONL lines, want %d", len(lines), goodTotal+1)
	}
	var last map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatal(err)
	}
	if last["type"] != "summary" {
		t.Errorf("last record = %v", last)
	}
}

func TestValidate_ConfigFlag(t *testing.T) {
	tmp := setupFramework(t, goodFiles())
	cfgPath := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("output: markdown\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, _ := run("--config", cfgPath)
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.HasPrefix(stdout, "# fwcheck report") {
		t.Errorf("expected markdown report:\n%s", stdout)
	}
}

func TestValidate_ToolsFile(t *testing.T) {
	tmp := setupFramework(t, goodFiles())
	tools := filepath.Join(tmp, "tools.yaml")
	if err := os.WriteFile(tools, []byte("allowed: [Read]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, _ := run("--tools-file", tools)
	if code != report.ExitFailed {
		t.Fatalf("exit = %d, want %d\n%s", code, report.ExitFailed, stdout)
	}
	for _, id := range []string{"agent/planner/tools-approved", "agent/reviewer/tools-approved"} {
		if !strings.Contains(stdout, "  - "+id) {
			t.Errorf("%s not itemized:\n%s", id, stdout)
		}
	}
}

func TestValidate_UnknownFormat(t *testing.T) {
	setupFramework(t, goodFiles())

	code, stdout, stderr := run("-o", "xml")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if stdout != "" || !strings.Contains(stderr, "unknown output format") {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestValidate_VerboseStreamsToStderr(t *testing.T) {
	setupFramework(t, goodFiles())

	code, stdout, stderr := run("-v")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	for _, want := range []string{"mode: repository (framework/)", "structure/claude-md", "catalog v"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if strings.Contains(stdout, "mode: repository") {
		t.Errorf("diagnostics leaked into stdout:\n%s", stdout)
	}
}

func TestVerbosePrintf(t *testing.T) {
	isolate(t)
	prev := verboseOut
	t.Cleanup(func() { verboseOut = prev })

	var buf bytes.Buffer
	verboseOut = &buf
	VerbosePrintf("hidden %d\n", 1)
	if buf.Len() != 0 {
		t.Errorf("printed with verbose off: %q", buf.String())
	}
	verbose = true
	VerbosePrintf("shown %d\n", 2)
	if got := buf.String(); got != "shown 2\n" {
		t.Errorf("VerbosePrintf wrote %q", got)
	}
}

func TestValidate_DetectsBeforeReadingConfig(t *testing.T) {
	isolate(t)
	tmp := chdirTemp(t)
	bad := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(bad, []byte("layout: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FWCHECK_CONFIG", bad)

	code, stdout, stderr := run()
	if code != report.ExitMode {
		t.Fatalf("exit = %d, want %d", code, report.ExitMode)
	}
	if stdout != "" || !strings.HasPrefix(stderr, "mode detection error:") {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestValidate_VerboseCounts(t *testing.T) {
	setupFramework(t, goodFiles())

	code, _, stderr := run("-v")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	want := fmt.Sprintf("%d checks (2 agents, 1 commands, 1 doc pages)", goodTotal)
	if !strings.Contains(stderr, want) {
		t.Errorf("stderr missing %q:\n%s", want, stderr)
	}
}

func TestChecks(t *testing.T) {
	setupFramework(t, goodFiles())

	code, stdout, _ := run("checks")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, fmt.Sprintf("%d checks (catalog v", goodTotal)) {
		t.Errorf("missing footer:\n%s", stdout)
	}
	if !strings.Contains(stdout, "agent/planner/field-description") {
		t.Errorf("missing agent check:\n%s", stdout)
	}

	code, stdout, _ = run("checks", "--category", "agent")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "16 checks") || strings.Contains(stdout, "structure/claude-md") {
		t.Errorf("category filter not applied:\n%s", stdout)
	}
}

func TestChecks_JSON(t *testing.T) {
	setupFramework(t, goodFiles())

	code, stdout, _ := run("checks", "-o", "json")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	var defs []map[string]any
	if err := json.Unmarshal([]byte(stdout), &defs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(defs) != goodTotal || defs[0]["id"] != "structure/claude-md" {
		t.Errorf("got %d defs, first = %v", len(defs), defs[0])
	}
}

func TestMode(t *testing.T) {
	isolate(t)
	tmp := chdirTemp(t)
	writeTree(t, tmp, map[string]string{"CLAUDE.md": rootFile})

	code, stdout, _ := run("mode")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "mode:   installed") || !strings.Contains(stdout, "prefix: (none)") {
		t.Errorf("mode output:\n%s", stdout)
	}

	code, stdout, _ = run("mode", "-o", "json")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	var m mode.ExecutionMode
	if err := json.Unmarshal([]byte(stdout), &m); err != nil || m.Kind != mode.Installed {
		t.Errorf("mode JSON = %+v, %v", m, err)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	code, stdout, _ := run("version")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	for _, want := range []string{"fwcheck version dev", "Catalog version:", "Go version:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfig(t *testing.T) {
	isolate(t)
	chdirTemp(t)
	t.Setenv("FWCHECK_ARGUMENT_TOKEN", "$INPUT")

	code, stdout, _ := run("config", "-o", "json")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	var rc config.ResolvedConfig
	if err := json.Unmarshal([]byte(stdout), &rc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if rc.Output.Value != "json" || rc.Output.Source != config.SourceFlag {
		t.Errorf("output = %+v", rc.Output)
	}
	if rc.ArgumentToken.Value != "$INPUT" || rc.ArgumentToken.Source != config.SourceEnv {
		t.Errorf("argument_token = %+v", rc.ArgumentToken)
	}

	resetFlags(rootCmd)
	code, stdout, _ = run("config")
	if code != report.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	for _, want := range []string{"Config files:", "commands.argument_token", "$INPUT", "environment"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("missing %q:\n%s", want, stdout)
		}
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStderr string
	}{
		{"failed checks", &report.FailedError{Checks: []string{"x"}}, report.ExitFailed, ""},
		{"security", fmt.Errorf("discover commands: %w", &safety.SecurityError{Path: "../x", Reason: "parent reference"}), report.ExitSecurity, "security error:"},
		{"mode", &mode.DetectionError{}, report.ExitMode, "mode detection error:"},
		{"other", errors.New("boom"), 1, "error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := reportError(&buf, tt.err); got != tt.wantCode {
				t.Errorf("code = %d, want %d", got, tt.wantCode)
			}
			if tt.wantStderr == "" && buf.Len() != 0 {
				t.Errorf("unexpected output %q", buf.String())
			}
			if !strings.HasPrefix(buf.String(), tt.wantStderr) {
				t.Errorf("output = %q, want prefix %q", buf.String(), tt.wantStderr)
			}
		})
	}
}

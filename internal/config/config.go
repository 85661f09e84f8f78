// Package config provides configuration management for fwcheck.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (FWCHECK_*)
// 3. Project config (.fwcheck/config.yaml in cwd, or FWCHECK_CONFIG)
// 4. Home config (~/.fwcheck/config.yaml)
// 5. Defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boshu2/fwcheck/embedded"
	"github.com/boshu2/fwcheck/internal/catalog"
)

// Config holds all fwcheck configuration.
type Config struct {
	// Output selects the report format (text, json, jsonl, markdown).
	Output string `yaml:"output" json:"output"`

	// Verbose streams outcomes and diagnostics to stderr.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// NoColor disables ANSI colors in text output.
	NoColor bool `yaml:"no_color" json:"no_color"`

	Tools       ToolsConfig       `yaml:"tools" json:"tools"`
	Commands    CommandsConfig    `yaml:"commands" json:"commands"`
	Integration IntegrationConfig `yaml:"integration" json:"integration"`

	// Layout names the framework directories. The root file is always CLAUDE.md.
	Layout catalog.Layout `yaml:"layout" json:"layout"`
}

// ToolsConfig controls the tool allow-list.
type ToolsConfig struct {
	// Allowed lists approved tool names. Entries ending in "*" match by prefix.
	Allowed []string `yaml:"allowed" json:"allowed,omitempty"`

	// File points to a YAML allow-list and replaces Allowed when set.
	File string `yaml:"file" json:"file,omitempty"`
}

// CommandsConfig holds command-definition settings.
type CommandsConfig struct {
	// ArgumentToken is the placeholder command bodies must contain.
	ArgumentToken string `yaml:"argument_token" json:"argument_token"`
}

// IntegrationConfig holds CLAUDE.md section requirements.
type IntegrationConfig struct {
	Sections []catalog.Section `yaml:"sections" json:"sections"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput = "text"

	envPrefix = "FWCHECK_"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: defaultOutput,
		Commands: CommandsConfig{
			ArgumentToken: catalog.DefaultArgumentToken,
		},
		Integration: IntegrationConfig{
			Sections: catalog.DefaultSections(),
		},
		Layout: catalog.DefaultLayout(),
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
// A missing config file is skipped; a malformed one is an error.
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, err := loadFromPath(homeConfigPath())
	if err != nil {
		return nil, err
	}
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, err := loadFromPath(projectConfigPath())
	if err != nil {
		return nil, err
	}
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fwcheck", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".fwcheck", "config.yaml")
}

// Paths returns the home and project config file locations, whether or not
// they exist.
func Paths() (home, project string) {
	return homeConfigPath(), projectConfigPath()
}

// loadFromPath loads config from a YAML file. A missing file yields nil, nil.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v, ok := getEnvString(envPrefix + "OUTPUT"); ok {
		cfg.Output = v
	}
	if v, _ := getEnvBool(envPrefix + "VERBOSE"); v {
		cfg.Verbose = true
	}
	if v, _ := getEnvBool(envPrefix + "NO_COLOR"); v {
		cfg.NoColor = true
	}
	if v, ok := getEnvString(envPrefix + "TOOLS_FILE"); ok {
		mergeTools(&cfg.Tools, &ToolsConfig{File: v})
	}
	if v, ok := getEnvString(envPrefix + "ARGUMENT_TOKEN"); ok {
		cfg.Commands.ArgumentToken = v
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
// Booleans can only be switched on by a higher layer.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	if src.Verbose {
		dst.Verbose = true
	}
	if src.NoColor {
		dst.NoColor = true
	}

	mergeTools(&dst.Tools, &src.Tools)
	mergeStr(&dst.Commands.ArgumentToken, src.Commands.ArgumentToken)
	if len(src.Integration.Sections) > 0 {
		dst.Integration.Sections = src.Integration.Sections
	}
	mergeLayout(&dst.Layout, &src.Layout)

	return dst
}

// mergeTools merges allow-list settings. File and Allowed are one setting:
// whichever a higher layer sets replaces both values from the lower layer.
func mergeTools(dst, src *ToolsConfig) {
	switch {
	case src.File != "":
		dst.File = src.File
		dst.Allowed = src.Allowed
	case len(src.Allowed) > 0:
		dst.Allowed = src.Allowed
		dst.File = ""
	}
}

// mergeLayout merges directory names field by field.
func mergeLayout(dst, src *catalog.Layout) {
	mergeStr(&dst.AgentsDir, src.AgentsDir)
	mergeStr(&dst.CommandsDir, src.CommandsDir)
	mergeStr(&dst.DocsDir, src.DocsDir)
	mergeStr(&dst.ExamplesDir, src.ExamplesDir)
	mergeStr(&dst.TemplatesDir, src.TemplatesDir)
	mergeStr(&dst.Readme, src.Readme)
}

// toolList is the allow-list file format, shared with the embedded default.
type toolList struct {
	Allowed []string `yaml:"allowed"`
}

// ParseToolList decodes an allow-list document. Both the "allowed:" mapping
// and a bare YAML sequence are accepted.
func ParseToolList(data []byte) ([]string, error) {
	var list toolList
	if err := yaml.Unmarshal(data, &list); err == nil && len(list.Allowed) > 0 {
		return list.Allowed, nil
	}
	var bare []string
	if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}
	return nil, ErrEmptyToolList
}

// AllowedTools returns the effective allow-list: the tools file when set,
// otherwise the configured list, otherwise the embedded default.
func (c *Config) AllowedTools() ([]string, error) {
	if c.Tools.File != "" {
		data, err := os.ReadFile(c.Tools.File)
		if err != nil {
			return nil, fmt.Errorf("read tools file: %w", err)
		}
		tools, err := ParseToolList(data)
		if err != nil {
			return nil, fmt.Errorf("tools file %s: %w", c.Tools.File, err)
		}
		return tools, nil
	}
	if len(c.Tools.Allowed) > 0 {
		return c.Tools.Allowed, nil
	}
	tools, err := ParseToolList(embedded.AllowedToolsYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded allow-list: %w", err)
	}
	return tools, nil
}

// Rules converts the configuration into catalog expansion rules.
func (c *Config) Rules() (catalog.Rules, error) {
	tools, err := c.AllowedTools()
	if err != nil {
		return catalog.Rules{}, err
	}
	for _, sec := range c.Integration.Sections {
		if sec.ID == "" || len(sec.Keywords) == 0 {
			return catalog.Rules{}, fmt.Errorf("%w: integration section %q needs an id and keywords", ErrInvalidConfig, sec.Title)
		}
	}
	layout := catalog.DefaultLayout()
	mergeLayout(&layout, &c.Layout)

	token := c.Commands.ArgumentToken
	if token == "" {
		token = catalog.DefaultArgumentToken
	}
	return catalog.Rules{
		Layout:        layout,
		AllowedTools:  tools,
		ArgumentToken: token,
		Sections:      c.Integration.Sections,
	}, nil
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceHome     Source = "~/.fwcheck/config.yaml"
	SourceProject  Source = ".fwcheck/config.yaml"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
	SourceEmbedded Source = "embedded"
)

// getEnvString returns the value and whether the env var was set.
func getEnvString(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// getEnvBool returns the boolean value and whether it was truthy.
func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "true" || v == "1" {
		return true, true
	}
	return false, false
}

// resolveStringField resolves a string through the precedence chain.
func resolveStringField(home, project, env, flag, def string) Resolved {
	result := Resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = Resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = Resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = Resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = Resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// resolveBoolField resolves a switch that any layer can turn on.
func resolveBoolField(home, project, env, flag bool) Resolved {
	result := Resolved{Value: false, Source: SourceDefault}
	if home {
		result = Resolved{Value: true, Source: SourceHome}
	}
	if project {
		result = Resolved{Value: true, Source: SourceProject}
	}
	if env {
		result = Resolved{Value: true, Source: SourceEnv}
	}
	if flag {
		result = Resolved{Value: true, Source: SourceFlag}
	}
	return result
}

// ResolvedConfig shows config values with their sources.
type ResolvedConfig struct {
	Output        Resolved `json:"output"`
	Verbose       Resolved `json:"verbose"`
	NoColor       Resolved `json:"no_color"`
	ToolsFile     Resolved `json:"tools_file"`
	ArgumentToken Resolved `json:"argument_token"`
	AllowedTools  Resolved `json:"allowed_tools"`
}

// Resolved is one setting and the layer that supplied it.
type Resolved struct {
	Value  any    `json:"value"`
	Source Source `json:"source"`
}

// Fields returns the resolved settings in display order.
func (rc *ResolvedConfig) Fields() []NamedResolved {
	return []NamedResolved{
		{"output", rc.Output},
		{"verbose", rc.Verbose},
		{"no_color", rc.NoColor},
		{"tools.file", rc.ToolsFile},
		{"commands.argument_token", rc.ArgumentToken},
		{"tools.allowed", rc.AllowedTools},
	}
}

// NamedResolved pairs a setting key with its resolution.
type NamedResolved struct {
	Key string
	Resolved
}

// Resolve returns configuration with source tracking.
// Uses precedence chain: flags > env > project > home > defaults.
// Only flags the user actually set should be passed in flags.
func Resolve(flags *Config) (*ResolvedConfig, error) {
	home, err := loadFromPath(homeConfigPath())
	if err != nil {
		return nil, err
	}
	project, err := loadFromPath(projectConfigPath())
	if err != nil {
		return nil, err
	}
	if home == nil {
		home = &Config{}
	}
	if project == nil {
		project = &Config{}
	}
	if flags == nil {
		flags = &Config{}
	}

	envOutput, _ := getEnvString(envPrefix + "OUTPUT")
	envVerbose, _ := getEnvBool(envPrefix + "VERBOSE")
	envNoColor, _ := getEnvBool(envPrefix + "NO_COLOR")
	envToolsFile, _ := getEnvString(envPrefix + "TOOLS_FILE")
	envToken, _ := getEnvString(envPrefix + "ARGUMENT_TOKEN")

	rc := &ResolvedConfig{
		Output:        resolveStringField(home.Output, project.Output, envOutput, flags.Output, defaultOutput),
		Verbose:       resolveBoolField(home.Verbose, project.Verbose, envVerbose, flags.Verbose),
		NoColor:       resolveBoolField(home.NoColor, project.NoColor, envNoColor, flags.NoColor),
		ToolsFile:     resolveStringField(home.Tools.File, project.Tools.File, envToolsFile, flags.Tools.File, ""),
		ArgumentToken: resolveStringField(home.Commands.ArgumentToken, project.Commands.ArgumentToken, envToken, flags.Commands.ArgumentToken, catalog.DefaultArgumentToken),
		AllowedTools:  Resolved{Value: "built-in list", Source: SourceEmbedded},
	}

	// Highest layer first; the first one that sets either field wins.
	layers := []struct {
		tools  ToolsConfig
		source Source
	}{
		{flags.Tools, SourceFlag},
		{ToolsConfig{File: envToolsFile}, SourceEnv},
		{project.Tools, SourceProject},
		{home.Tools, SourceHome},
	}
	for _, l := range layers {
		if l.tools.File != "" {
			rc.AllowedTools = Resolved{Value: l.tools.File, Source: l.source}
			break
		}
		if len(l.tools.Allowed) > 0 {
			rc.AllowedTools = Resolved{Value: l.tools.Allowed, Source: l.source}
			break
		}
	}

	return rc, nil
}

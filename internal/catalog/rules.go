package catalog

import (
	"strings"
)

// Layout names the framework's directories relative to the mode prefix.
type Layout struct {
	AgentsDir    string `yaml:"agents" json:"agents"`
	CommandsDir  string `yaml:"commands" json:"commands"`
	DocsDir      string `yaml:"docs" json:"docs"`
	ExamplesDir  string `yaml:"examples" json:"examples"`
	TemplatesDir string `yaml:"templates" json:"templates"`
	Readme       string `yaml:"readme" json:"readme"`
}

// Section is a structural section the root instruction file must contain.
// A heading matches when its text contains any keyword, case-insensitively.
type Section struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Rules parameterizes catalog expansion. They come from configuration; the
// catalog never hardcodes the tool allow-list.
type Rules struct {
	Layout        Layout
	AllowedTools  []string
	ArgumentToken string
	Sections      []Section
}

// DefaultLayout is the conventional framework layout.
func DefaultLayout() Layout {
	return Layout{
		AgentsDir:    "agents",
		CommandsDir:  "commands",
		DocsDir:      "docs",
		ExamplesDir:  "examples",
		TemplatesDir: "templates",
		Readme:       "README.md",
	}
}

// DefaultSections are the sections every CLAUDE.md must carry.
func DefaultSections() []Section {
	return []Section{
		{ID: "core-principles", Title: "Core Principles", Keywords: []string{"core principles", "principles"}},
		{ID: "workflow", Title: "Workflow", Keywords: []string{"workflow"}},
		{ID: "instructions", Title: "Instructions", Keywords: []string{"instructions"}},
	}
}

// DefaultArgumentToken is the placeholder command bodies use for user input.
const DefaultArgumentToken = "$ARGUMENTS"

// DefaultRules returns rules with the default layout, sections and token and
// an empty allow-list.
func DefaultRules() Rules {
	return Rules{
		Layout:        DefaultLayout(),
		ArgumentToken: DefaultArgumentToken,
		Sections:      DefaultSections(),
	}
}

// AllowList matches declared tool capabilities against approved names.
// An entry ending in "*" matches by prefix ("mcp__*"). A declared tool with a
// parenthesized scope ("Bash(git status:*)") is matched by its bare name.
type AllowList struct {
	exact    map[string]bool
	prefixes []string
}

// NewAllowList builds an allow-list from approved names.
func NewAllowList(names []string) AllowList {
	al := AllowList{exact: make(map[string]bool)}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if strings.HasSuffix(n, "*") {
			al.prefixes = append(al.prefixes, strings.TrimSuffix(n, "*"))
			continue
		}
		al.exact[n] = true
	}
	return al
}

// Allows reports whether tool is approved.
func (al AllowList) Allows(tool string) bool {
	name := ToolName(tool)
	if name == "" {
		return false
	}
	if al.exact[name] {
		return true
	}
	for _, p := range al.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// ToolName strips a parenthesized scope from a declared tool.
func ToolName(tool string) string {
	tool = strings.TrimSpace(tool)
	if i := strings.Index(tool, "("); i >= 0 {
		tool = tool[:i]
	}
	return strings.TrimSpace(tool)
}

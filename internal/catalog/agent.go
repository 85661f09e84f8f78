package catalog

import (
	"fmt"

	"github.com/boshu2/fwcheck/internal/check"
)

// Required agent front matter fields.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldTools       = "tools"
)

// agentChecks runs once per discovered agent file, in this order.
var agentChecks = []itemCheck{
	{
		Name:        "exists",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "agent file exists and is readable",
		Assert:      func(item, Rules) check.Assertion { return fileExists },
	},
	{
		Name:        "frontmatter",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "front matter block parses as YAML",
		Assert:      func(item, Rules) check.Assertion { return frontmatterParses },
	},
	{
		Name:        "field-name",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "front matter declares name",
		Assert:      func(item, Rules) check.Assertion { return requireField(fieldName) },
	},
	{
		Name:        "field-description",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "front matter declares description",
		Assert:      func(item, Rules) check.Assertion { return requireField(fieldDescription) },
	},
	{
		Name:        "field-tools",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "front matter declares tools",
		Assert:      func(item, Rules) check.Assertion { return requireField(fieldTools) },
	},
	{
		Name:        "tools-approved",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "every declared tool is on the allow-list",
		Assert: func(_ item, r Rules) check.Assertion {
			return toolsApproved(fieldTools, r.AllowedTools)
		},
	},
	{
		Name:        "name-matches-file",
		Kind:        check.File,
		Severity:    check.Warning,
		Description: "name matches the file name",
		Assert:      func(it item, _ Rules) check.Assertion { return nameMatchesFile(it.Stem) },
	},
	{
		Name:        "body",
		Kind:        check.File,
		Severity:    check.Warning,
		Description: "definition has a non-empty body",
		Assert:      func(item, Rules) check.Assertion { return nonEmptyBody },
	},
}

// nameMatchesFile passes vacuously when name is absent; field-name reports that.
func nameMatchesFile(stem string) check.Assertion {
	return func(s check.Subject) error {
		doc, err := parseDoc(s)
		if err != nil {
			return fmt.Errorf("cannot read field %q: %w", fieldName, err)
		}
		name := doc.String(fieldName)
		if name == "" || name == stem {
			return nil
		}
		return fmt.Errorf("name %q does not match file name %q", name, stem+".md")
	}
}

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
)

const (
	fieldAllowedTools = "allowed-tools"
	fieldArgumentHint = "argument-hint"
)

// commandChecks runs once per discovered command file, in this order.
var commandChecks = []itemCheck{
	{
		Name:        "exists",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "command file exists and is readable",
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
		Name:        "field-description",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "front matter declares description",
		Assert:      func(item, Rules) check.Assertion { return requireField(fieldDescription) },
	},
	{
		Name:        "allowed-tools-approved",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "every allowed tool is on the allow-list",
		Assert: func(_ item, r Rules) check.Assertion {
			return toolsApproved(fieldAllowedTools, r.AllowedTools)
		},
	},
	{
		Name:        "body",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "definition has a non-empty body",
		Assert:      func(item, Rules) check.Assertion { return nonEmptyBody },
	},
	{
		Name:        "argument-token",
		Kind:        check.File,
		Severity:    check.Critical,
		Description: "body uses the argument placeholder",
		Assert:      func(_ item, r Rules) check.Assertion { return containsToken(r.ArgumentToken) },
	},
	{
		Name:        "agent-reference",
		Kind:        check.File,
		Severity:    check.Warning,
		Description: "body references at least one agent",
		Assert:      func(it item, _ Rules) check.Assertion { return referencesAgent(it.Agents) },
	},
	{
		Name:        "argument-hint",
		Kind:        check.File,
		Severity:    check.Warning,
		Description: "argument-hint is declared when the placeholder is used",
		Assert:      func(_ item, r Rules) check.Assertion { return hintForToken(r.ArgumentToken) },
	},
}

func containsToken(token string) check.Assertion {
	return func(s check.Subject) error {
		body, err := bodyOf(s)
		if err != nil {
			return err
		}
		if !strings.Contains(body, token) {
			return fmt.Errorf("body does not contain the argument placeholder %s", token)
		}
		return nil
	}
}

func referencesAgent(agents []agentRef) check.Assertion {
	return func(s check.Subject) error {
		body, err := bodyOf(s)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			return errors.New("no agents were discovered to reference")
		}
		for _, a := range agents {
			if a.mentionedIn(body) {
				return nil
			}
		}
		return errors.New("body does not reference any discovered agent")
	}
}

// hintForToken passes vacuously when the body does not use the token.
func hintForToken(token string) check.Assertion {
	return func(s check.Subject) error {
		doc, err := parseDoc(s)
		if err != nil {
			return fmt.Errorf("cannot read field %q: %w", fieldArgumentHint, err)
		}
		if !strings.Contains(doc.Body, token) || doc.Has(fieldArgumentHint) {
			return nil
		}
		return fmt.Errorf("body uses %s but front matter has no %q", token, fieldArgumentHint)
	}
}

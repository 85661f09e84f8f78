package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/boshu2/fwcheck/internal/check"
	"github.com/boshu2/fwcheck/internal/frontmatter"
)

var headingRE = regexp.MustCompile(`(?m)^[ \t]{0,3}(#{1,6})[ \t]+(.+?)[ \t]*#*[ \t]*$`)

// requireFile fails unless the subject is a readable regular file.
func requireFile(s check.Subject) error {
	if !s.Exists() {
		if s.Err != nil && !errors.Is(s.Err, fs.ErrNotExist) {
			return fmt.Errorf("%s is not accessible: %v", s.Target, s.Err)
		}
		return fmt.Errorf("%s not found", s.Target)
	}
	if s.Info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", s.Target)
	}
	if s.Err != nil {
		return fmt.Errorf("%s could not be read: %v", s.Target, s.Err)
	}
	return nil
}

// requireDir fails unless the subject is a readable directory.
func requireDir(s check.Subject) error {
	if !s.Exists() {
		return fmt.Errorf("%s/ directory not found", s.Target)
	}
	if !s.Info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", s.Target)
	}
	if s.Err != nil {
		return fmt.Errorf("%s/ could not be listed: %v", s.Target, s.Err)
	}
	return nil
}

// parseDoc returns the subject's front matter document.
func parseDoc(s check.Subject) (*frontmatter.Document, error) {
	if err := requireFile(s); err != nil {
		return nil, err
	}
	doc, err := frontmatter.Parse(s.Content)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// bodyOf returns the markdown body, or the whole content when the front
// matter cannot be parsed, so body-level checks still report on their own.
func bodyOf(s check.Subject) (string, error) {
	if err := requireFile(s); err != nil {
		return "", err
	}
	if doc, err := frontmatter.Parse(s.Content); err == nil {
		return doc.Body, nil
	}
	return string(s.Content), nil
}

func fileExists(s check.Subject) error {
	return requireFile(s)
}

func frontmatterParses(s check.Subject) error {
	if _, err := parseDoc(s); err != nil {
		return fmt.Errorf("front matter: %w", err)
	}
	return nil
}

func requireField(field string) check.Assertion {
	return func(s check.Subject) error {
		doc, err := parseDoc(s)
		if err != nil {
			return fmt.Errorf("cannot read field %q: %w", field, err)
		}
		if !doc.Has(field) {
			return fmt.Errorf("missing required front matter field %q", field)
		}
		return nil
	}
}

func toolsApproved(field string, allowed []string) check.Assertion {
	al := NewAllowList(allowed)
	return func(s check.Subject) error {
		doc, err := parseDoc(s)
		if err != nil {
			return fmt.Errorf("cannot read field %q: %w", field, err)
		}
		var rejected []string
		for _, tool := range doc.List(field) {
			if !al.Allows(tool) {
				rejected = append(rejected, tool)
			}
		}
		if len(rejected) > 0 {
			return fmt.Errorf("%s declares unapproved tools: %s", field, strings.Join(rejected, ", "))
		}
		return nil
	}
}

func nonEmptyBody(s check.Subject) error {
	doc, err := parseDoc(s)
	if err != nil {
		return fmt.Errorf("cannot read body: %w", err)
	}
	if strings.TrimSpace(doc.Body) == "" {
		return errors.New("body after front matter is empty")
	}
	return nil
}

func nonEmptyFile(s check.Subject) error {
	if err := requireFile(s); err != nil {
		return err
	}
	if len(strings.TrimSpace(string(s.Content))) == 0 {
		return fmt.Errorf("%s is empty", s.Target)
	}
	return nil
}

// dirHasEntries fails unless the directory holds at least one entry, or at
// least one *.md regular file when markdownOnly is set.
func dirHasEntries(markdownOnly bool) check.Assertion {
	return func(s check.Subject) error {
		if err := requireDir(s); err != nil {
			return err
		}
		for _, e := range s.Entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if !markdownOnly {
				return nil
			}
			if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".md") {
				return nil
			}
		}
		if markdownOnly {
			return fmt.Errorf("%s/ contains no .md files", s.Target)
		}
		return fmt.Errorf("%s/ is empty", s.Target)
	}
}

// headings returns the text of every markdown heading in content.
func headings(content string) []string {
	var out []string
	for _, m := range headingRE.FindAllStringSubmatch(content, -1) {
		out = append(out, strings.TrimSpace(m[2]))
	}
	return out
}

// agentRef is a discovered agent name with its mention pattern, compiled
// once per catalog.
type agentRef struct {
	Name string
	re   *regexp.Regexp
}

// newAgentRefs compiles a mention pattern for each agent name. Hyphens and
// underscores count as word characters so "review" does not match inside
// "code-review".
func newAgentRefs(names []string) []agentRef {
	refs := make([]agentRef, 0, len(names))
	for _, n := range names {
		ref := agentRef{Name: n}
		if n != "" {
			ref.re = regexp.MustCompile(`(?i)(^|[^a-z0-9_-])` + regexp.QuoteMeta(n) + `($|[^a-z0-9_-])`)
		}
		refs = append(refs, ref)
	}
	return refs
}

// mentionedIn reports whether text names the agent as a whole token,
// ignoring case.
func (a agentRef) mentionedIn(text string) bool {
	return a.re != nil && a.re.MatchString(text)
}

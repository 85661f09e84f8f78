// Package frontmatter extracts the YAML block that opens agent and command
// definition files.
package frontmatter

import (
	"bufio"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a parsed definition file.
type Document struct {
	Fields map[string]any
	Body   string
}

// Parse splits content into front matter and body. The first line must be
// "---" and a later line must close the block with "---". The block must
// decode to a YAML mapping; an empty block decodes to an empty mapping.
func Parse(content []byte) (*Document, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != delimiter {
		return nil, ErrNoFrontmatter
	}

	var fmLines []string
	closed := false
	consumed := len(scanner.Text()) + 1
	for scanner.Scan() {
		line := scanner.Text()
		consumed += len(line) + 1
		if strings.TrimSpace(line) == delimiter {
			closed = true
			break
		}
		fmLines = append(fmLines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan front matter: %w", err)
	}
	if !closed {
		return nil, ErrUnterminated
	}

	fields := make(map[string]any)
	if raw := strings.Join(fmLines, "\n"); strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if fields == nil {
			// A document like "~" decodes to nil.
			fields = make(map[string]any)
		}
	}

	body := ""
	if consumed < len(text) {
		body = text[consumed:]
	}

	return &Document{Fields: fields, Body: body}, nil
}

// Has reports whether key is present with a non-empty value.
func (d *Document) Has(key string) bool {
	switch v := d.Fields[key].(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// String returns key as a trimmed string, or "" when absent.
func (d *Document) String(key string) string {
	switch v := d.Fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// List returns key as a list of trimmed, non-empty strings. Both YAML
// sequences and comma-separated scalars ("Read, Grep, Glob") are accepted,
// as is the inline "[Read, Grep]" form written as a string.
func (d *Document) List(key string) []string {
	var out []string
	switch v := d.Fields[key].(type) {
	case nil:
		return nil
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		s := strings.Trim(strings.TrimSpace(v), "[]")
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	default:
		out = append(out, fmt.Sprintf("%v", v))
	}
	return out
}

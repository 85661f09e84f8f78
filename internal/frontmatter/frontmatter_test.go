package frontmatter

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	content := "---\nname: code-reviewer\ndescription: Reviews diffs\ntools: Read, Grep, Glob\n---\n# Code Reviewer\n\nReview carefully.\n"
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.String("name"); got != "code-reviewer" {
		t.Errorf("name = %q", got)
	}
	if got := doc.String("description"); got != "Reviews diffs" {
		t.Errorf("description = %q", got)
	}
	if got, want := doc.List("tools"), []string{"Read", "Grep", "Glob"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tools = %v, want %v", got, want)
	}
	if doc.Body != "# Code Reviewer\n\nReview carefully.\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no block", "# Title\n", ErrNoFrontmatter},
		{"empty file", "", ErrNoFrontmatter},
		{"leading blank line", "\n---\nname: x\n---\n", ErrNoFrontmatter},
		{"unterminated", "---\nname: x\n# body\n", ErrUnterminated},
		{"bad yaml", "---\nname: [unclosed\n---\nbody\n", ErrInvalidYAML},
		{"sequence not mapping", "---\n- a\n- b\n---\nbody\n", ErrInvalidYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_EmptyBlock(t *testing.T) {
	doc, err := Parse([]byte("---\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Fields) != 0 {
		t.Errorf("Fields = %v, want empty", doc.Fields)
	}
	if doc.Body != "body" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParse_CRLFAndBOM(t *testing.T) {
	doc, err := Parse([]byte("\ufeff---\r\nname: x\r\n---\r\nbody\r\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.String("name") != "x" {
		t.Errorf("name = %q", doc.String("name"))
	}
	if doc.Body != "body\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestDocument_List(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"yaml sequence", "---\ntools:\n  - Read\n  - Bash\n---\n", []string{"Read", "Bash"}},
		{"flow sequence", "---\ntools: [Read, Bash]\n---\n", []string{"Read", "Bash"}},
		{"quoted inline", "---\ntools: \"[Read, Bash]\"\n---\n", []string{"Read", "Bash"}},
		{"single", "---\ntools: Read\n---\n", []string{"Read"}},
		{"trailing comma", "---\ntools: Read, \n---\n", []string{"Read"}},
		{"absent", "---\nname: x\n---\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.content))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := doc.List("tools"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_Has(t *testing.T) {
	doc, err := Parse([]byte("---\nname: x\ndescription: \"  \"\ntools: []\nmodel: 3\n---\n"))
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"name":        true,
		"description": false,
		"tools":       false,
		"model":       true,
		"missing":     false,
	}
	for key, want := range cases {
		if got := doc.Has(key); got != want {
			t.Errorf("Has(%q) = %v, want %v", key, got, want)
		}
	}
}

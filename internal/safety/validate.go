package safety

import "strings"

// Rule names one entry of the rejection table.
type Rule string

const (
	RuleTraversal     Rule = "traversal"
	RuleDoubleSlash   Rule = "double-slash"
	RuleDotSegment    Rule = "dot-segment"
	RuleNullByte      Rule = "null-byte"
	RuleMetacharacter Rule = "shell-metacharacter"
)

// Rejection is a single substring rule. The first match wins.
type Rejection struct {
	Rule   Rule
	Needle string
	Reason string
}

// Rules is the complete, ordered rejection table. Nothing outside this table
// causes a rejection.
var Rules = []Rejection{
	{RuleTraversal, "..", "contains parent traversal \"..\""},
	{RuleDoubleSlash, "//", "contains doubled separator \"//\""},
	{RuleDotSegment, "/./", "contains current-directory segment \"/./\""},
	{RuleNullByte, "\x00", "contains a NUL byte"},
	{RuleMetacharacter, ";", "contains shell metacharacter \";\""},
	{RuleMetacharacter, "|", "contains shell metacharacter \"|\""},
	{RuleMetacharacter, "`", "contains shell metacharacter \"`\""},
	{RuleMetacharacter, "$", "contains shell metacharacter \"$\""},
}

// Verdict is the result of validating a candidate path.
type Verdict struct {
	Accepted bool
	// Path is the candidate, unchanged. Only meaningful when Accepted.
	Path   string
	Rule   Rule
	Reason string
}

// Err returns nil for an accepted verdict and a *SecurityError otherwise.
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	return &SecurityError{Path: v.Path, Rule: v.Rule, Reason: v.Reason}
}

// Validate checks a candidate path against Rules. It is total: every string,
// including the empty string and invalid UTF-8, yields a verdict.
func Validate(path string) Verdict {
	for _, r := range Rules {
		if strings.Contains(path, r.Needle) {
			return Verdict{Accepted: false, Path: path, Rule: r.Rule, Reason: r.Reason}
		}
	}
	return Verdict{Accepted: true, Path: path}
}

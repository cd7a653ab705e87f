package lint

import (
	"cmp"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Violation is one issue reported by a rule.
type Violation struct {
	// Rule is the reporting rule's name.
	Rule string

	// RuleID is the reporting rule's short identifier.
	RuleID string

	// Severity is the configured severity of the rule.
	Severity config.Severity

	// Start and End delimit the half-open byte range [Start, End).
	Start int
	End   int

	// Message is the human-readable description of the issue.
	Message string
}

// Range returns the violation's span as a SourceRange.
func (v Violation) Range() mdast.SourceRange {
	return mdast.Span(v.Start, v.End)
}

// compareViolations orders by start offset and rule name, then by end
// offset and message so that output is fully deterministic.
func compareViolations(a, b Violation) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := strings.Compare(a.Rule, b.Rule); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}
	return strings.Compare(a.Message, b.Message)
}

// sameViolation reports whether two violations are exact duplicates.
func sameViolation(a, b Violation) bool {
	return a.Rule == b.Rule && a.Start == b.Start && a.End == b.End && a.Message == b.Message
}

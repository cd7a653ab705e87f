package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// NoEmptyLinksRule reports links without a destination.
type NoEmptyLinksRule struct {
	lint.BaseRule
}

// NewNoEmptyLinksRule creates a new empty link rule.
func NewNoEmptyLinksRule() *NoEmptyLinksRule {
	return &NoEmptyLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD042",
			"no-empty-links",
			"No empty links",
			[]string{"links"},
		),
	}
}

// Visit reports every link whose destination is empty, a bare "#" or "<>".
// Reference links use their definition's destination. Definitions and
// unresolved references have no destination of their own and are skipped.
func (r *NoEmptyLinksRule) Visit(ctx *lint.RuleContext) error {
	for _, link := range ctx.Doc.AllLinks() {
		if link.Kind != mdast.NodeLink {
			continue
		}
		dest := link.Inline.Link.Destination
		if dest != "" && dest != "#" {
			continue
		}
		ctx.ReportNode(link, fmt.Sprintf("The link has no URL, '%s'.", ctx.Doc.Text(link)))
	}
	return nil
}

// trailingParens matches a parenthesized segment at the end of a text run.
// Nested parentheses do not match.
var trailingParens = regexp.MustCompile(`\([^)]+\)$`)

// NoReversedLinksRule detects (text)[url] written in place of [text](url).
type NoReversedLinksRule struct {
	lint.BaseRule
}

// NewNoReversedLinksRule creates a new reversed link rule.
func NewNoReversedLinksRule() *NoReversedLinksRule {
	return &NoReversedLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD011",
			"no-reversed-links",
			"Reversed link syntax",
			[]string{"links"},
		),
	}
}

const reversedLinkMessage = "Link syntax reversed, change to '[Text](Url)'."

// Visit reports every unresolved reference. When the node before it ends
// with a (...) segment the violation starts at that opening parenthesis,
// otherwise it covers the reference alone.
func (r *NoReversedLinksRule) Visit(ctx *lint.RuleContext) error {
	for _, ref := range ctx.Doc.LinkReferences() {
		if prev := ref.Prev; prev != nil {
			if loc := trailingParens.FindIndex(ctx.Doc.Text(prev)); loc != nil {
				ctx.Report(prev.Range.StartOffset+loc[0], ref.Range.EndOffset, reversedLinkMessage)
				continue
			}
		}
		ctx.ReportNode(ref, reversedLinkMessage)
	}
	return nil
}

package rules

import "github.com/yaklabco/mdcheck/pkg/lint"

// HeadingIncrementRule checks that heading levels only increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Header levels should only increment by one level at a time",
			[]string{"headers"},
		),
	}
}

// Visit reports every heading more than one level deeper than the heading
// before it. The first heading may have any level.
func (r *HeadingIncrementRule) Visit(ctx *lint.RuleContext) error {
	prevLevel := 0
	for _, heading := range ctx.Doc.Headings() {
		level := heading.Block.HeadingLevel
		if prevLevel > 0 && level > prevLevel+1 {
			ctx.ReportNode(heading, r.Descriptor().Description)
		}
		prevLevel = level
	}
	return nil
}

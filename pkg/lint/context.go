package lint

import "github.com/yaklabco/mdcheck/pkg/mdast"

// RuleContext is what a rule sees during one Visit: the shared document,
// its own validated configuration, and its own Reporter.
type RuleContext struct {
	// Doc is the read-only document under inspection.
	Doc *Document

	// Config is the rule's configuration for this run.
	Config RuleConfig

	reporter *Reporter
}

// NewRuleContext creates a RuleContext reporting into reporter.
func NewRuleContext(doc *Document, cfg RuleConfig, reporter *Reporter) *RuleContext {
	return &RuleContext{Doc: doc, Config: cfg, reporter: reporter}
}

// Report records a violation covering [start, end).
func (rc *RuleContext) Report(start, end int, message string) {
	rc.reporter.ReportError(start, end, message)
}

// ReportNode records a violation covering the node's range.
func (rc *RuleContext) ReportNode(n *mdast.Node, message string) {
	rc.reporter.ReportNode(n, message)
}

// Reporter returns the rule's reporter.
func (rc *RuleContext) Reporter() *Reporter {
	return rc.reporter
}

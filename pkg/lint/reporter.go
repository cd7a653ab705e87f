package lint

import (
	"slices"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Reporter is the append-only sink a rule reports into.
// Each rule execution gets its own Reporter; it is not safe for concurrent use.
type Reporter struct {
	rule       string
	ruleID     string
	severity   config.Severity
	length     int
	violations []Violation
}

// NewReporter creates a Reporter that attributes violations to the given
// rule and validates ranges against a source of the given length.
func NewReporter(desc Descriptor, severity config.Severity, length int) *Reporter {
	return &Reporter{
		rule:     desc.Name,
		ruleID:   desc.ID,
		severity: severity,
		length:   length,
	}
}

// ReportError records a violation covering [start, end).
//
// It panics with a *ReporterMisuseError when start > end or the range lies
// outside the source. The engine recovers the panic and marks the rule as failed.
func (r *Reporter) ReportError(start, end int, message string) {
	if start > end || start < 0 || end > r.length {
		panic(&ReporterMisuseError{Rule: r.rule, Start: start, End: end, Length: r.length})
	}
	r.violations = append(r.violations, Violation{
		Rule:     r.rule,
		RuleID:   r.ruleID,
		Severity: r.severity,
		Start:    start,
		End:      end,
		Message:  message,
	})
}

// ReportNode records a violation covering the node's range.
func (r *Reporter) ReportNode(n *mdast.Node, message string) {
	r.ReportError(n.Range.StartOffset, n.Range.EndOffset, message)
}

// Len returns the number of violations reported so far.
func (r *Reporter) Len() int {
	return len(r.violations)
}

// Violations returns a copy of the reported violations in report order.
func (r *Reporter) Violations() []Violation {
	return slices.Clone(r.violations)
}

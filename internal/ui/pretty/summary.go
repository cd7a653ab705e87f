package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 1 rule failure".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.ViolationsTotal == 0 && stats.RuleFailures == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files"))) + "\n"
	}

	var severityParts []string
	if n := stats.ViolationsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(n, "error", "errors")))
	}
	if n := stats.ViolationsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(n, "warning", "warnings")))
	}
	if n := stats.ViolationsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	main := plural(stats.ViolationsTotal, "issue", "issues")
	if len(severityParts) > 0 {
		main += " (" + strings.Join(severityParts, ", ") + ")"
	}
	parts := []string{main + " in " + plural(stats.FilesWithIssues, "file", "files")}

	if stats.RuleFailures > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.RuleFailures, "rule failure", "rule failures")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "unreadable file", "unreadable files")))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatRuleBreakdown formats one line per rule in the order given.
// It returns an empty string when rules is empty.
func (s *Styles) FormatRuleBreakdown(rules []analysis.RuleAnalysis, ruleFormat config.RuleFormat) string {
	if len(rules) == 0 {
		return ""
	}

	ids := make([]string, len(rules))
	width := 0
	for i, rule := range rules {
		ids[i] = config.FormatRuleID(ruleFormat, rule.RuleID, rule.RuleName)
		width = max(width, runewidth.StringWidth(ids[i]))
	}

	var builder strings.Builder
	builder.WriteString(s.Header.Render("Issues by rule") + "\n")
	for i, rule := range rules {
		var counts []string
		if rule.Issues > 0 {
			counts = append(counts, s.severityStyle(rule.Counts).Render(plural(rule.Issues, "issue", "issues")))
		}
		if rule.Failures > 0 {
			counts = append(counts, s.Failure.Render(plural(rule.Failures, "failure", "failures")))
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(ids[i]))
		fmt.Fprintf(&builder, "  %s%s  %s in %s\n",
			s.RuleID.Render(ids[i]), pad,
			strings.Join(counts, ", "),
			plural(len(rule.Files), "file", "files"),
		)
	}
	builder.WriteString("\n")

	return builder.String()
}

// severityStyle picks the style of the most severe count.
func (s *Styles) severityStyle(c analysis.Counts) lipgloss.Style {
	switch {
	case c.Errors > 0:
		return s.Error
	case c.Warnings > 0:
		return s.Warning
	default:
		return s.Info
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

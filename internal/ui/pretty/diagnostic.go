package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// contextIndent aligns source excerpts under the diagnostic line.
const contextIndent = "        "

// tabWidth is the display width of a tab in source excerpts.
const tabWidth = 4

// Diagnostic is a violation resolved to line and column for display.
type Diagnostic struct {
	Path     string
	RuleID   string
	RuleName string
	Severity config.Severity
	Message  string

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	// EndLine and EndColumn locate the exclusive end of the range.
	EndLine   int
	EndColumn int
}

// FormatDiagnostic formats a diagnostic with the configured rule identifier.
// When sourceLine is non-empty, an excerpt with an underline is appended.
// maxWidth bounds the excerpt width; zero means unbounded.
func (s *Styles) FormatDiagnostic(diag *Diagnostic, sourceLine string, ruleFormat config.RuleFormat, maxWidth int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.Path), diag.Line, diag.Column)
	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if sourceLine != "" {
		endColumn := diag.EndColumn
		if diag.EndLine != diag.Line {
			endColumn = len(sourceLine) + 1
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column, endColumn, maxWidth))
	}

	return builder.String()
}

// FormatFailure formats a rule that failed while linting a file.
func (s *Styles) FormatFailure(path, ruleID, ruleName string, err error, ruleFormat config.RuleFormat) string {
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Failure.Render("failure"),
		s.Message.Render(fmt.Sprintf("rule execution failed: %v", err)),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, ruleID, ruleName)+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats a source line with the byte columns
// [startCol, endCol) underlined. Columns are 1-based. Wide characters and
// tabs are accounted for so the underline lines up in a terminal.
func (s *Styles) FormatSourceContext(line string, startCol, endCol, maxWidth int) string {
	startCol = clamp(startCol, 1, len(line)+1)
	endCol = clamp(endCol, startCol, len(line)+1)

	display, cols := layout(line)
	pad := cols[startCol-1]
	width := max(cols[endCol-1]-pad, 1)

	if avail := maxWidth - len(contextIndent); maxWidth > 0 && avail > 0 {
		if runewidth.StringWidth(display) > avail {
			display = runewidth.Truncate(display, avail, "...")
		}
		if pad >= avail {
			pad, width = 0, 0
		} else if pad+width > avail {
			width = avail - pad
		}
	}

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(display) + "\n")
	if width > 0 {
		builder.WriteString(contextIndent + strings.Repeat(" ", pad) +
			s.Caret.Render("^"+strings.Repeat("~", width-1)) + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// layout expands tabs in line and returns the display text together with
// the display column of every byte offset, including len(line).
func layout(line string) (string, []int) {
	cols := make([]int, len(line)+1)
	var builder strings.Builder
	col := 0
	for i, r := range line {
		for j := i; j < len(line) && (j == i || !utf8.RuneStart(line[j])); j++ {
			cols[j] = col
		}
		if r == '\t' {
			n := tabWidth - col%tabWidth
			builder.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		builder.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	cols[len(line)] = col
	return builder.String(), cols
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

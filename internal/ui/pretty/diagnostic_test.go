package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/config"
)

func sampleDiagnostic() *pretty.Diagnostic {
	return &pretty.Diagnostic{
		Path:      "docs/readme.md",
		RuleID:    "MD038",
		RuleName:  "no-space-in-code",
		Severity:  config.SeverityWarning,
		Message:   "Spaces inside code span elements",
		Line:      3,
		Column:    5,
		EndLine:   3,
		EndColumn: 11,
	}
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatDiagnostic(sampleDiagnostic(), "", config.RuleFormatName, 0)

	assert.Equal(t, "  docs/readme.md:3:5  warning  Spaces inside code span elements  (no-space-in-code)\n", result)
}

func TestFormatDiagnostic_RuleFormats(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		format   config.RuleFormat
		contains string
	}{
		{config.RuleFormatName, "(no-space-in-code)"},
		{config.RuleFormatID, "(MD038)"},
		{config.RuleFormatCombined, "(MD038/no-space-in-code)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, styles.FormatDiagnostic(sampleDiagnostic(), "", tt.format, 0), tt.contains)
		})
	}
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatDiagnostic(sampleDiagnostic(), "Use `foo ` here", config.RuleFormatID, 0)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "        Use `foo ` here", lines[1])
	assert.Equal(t, "            ^~~~~~", lines[2])
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name       string
		line       string
		start, end int
		maxWidth   int
		want       []string
	}{
		{
			name:  "ascii",
			line:  "abc def",
			start: 5, end: 8,
			want: []string{"abc def", "    ^~~"},
		},
		{
			name:  "empty range gets one caret",
			line:  "abc",
			start: 2, end: 2,
			want: []string{"abc", " ^"},
		},
		{
			name:  "wide characters",
			line:  "日本 `x `",
			start: 8, end: 13,
			want: []string{"日本 `x `", "     ^~~~"},
		},
		{
			name:  "tab expands to next stop",
			line:  "\t`a `",
			start: 2, end: 6,
			want: []string{"    `a `", "    ^~~~"},
		},
		{
			name:  "truncated to width",
			line:  strings.Repeat("x", 40) + "end",
			start: 1, end: 44,
			maxWidth: 28,
			want: []string{strings.Repeat("x", 17) + "...", "^" + strings.Repeat("~", 19)},
		},
		{
			name:  "range beyond visible width",
			line:  strings.Repeat("x", 40) + "end",
			start: 41, end: 44,
			maxWidth: 28,
			want: []string{strings.Repeat("x", 17) + "..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := styles.FormatSourceContext(tt.line, tt.start, tt.end, tt.maxWidth)
			var lines []string
			for _, l := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
				lines = append(lines, strings.TrimPrefix(l, "        "))
			}
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestFormatFailure(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatFailure("a.md", "MD001", "heading-increment", errors.New("boom"), config.RuleFormatCombined)

	assert.Equal(t, "  a.md  failure  rule execution failed: boom  (MD001/heading-increment)\n", result)
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "docs/readme.md (5 issues)", styles.FormatFileHeader("docs/readme.md", 5))
	assert.Equal(t, "docs/readme.md (1 issue)", styles.FormatFileHeader("docs/readme.md", 1))
	assert.Equal(t, "docs/readme.md", styles.FormatFileHeader("docs/readme.md", 0))
}

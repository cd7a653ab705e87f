package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 5},
			want:  "No issues found (5 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:  10,
				FilesWithIssues: 3,
				ViolationsTotal: 12,
				ViolationsBySeverity: map[config.Severity]int{
					config.SeverityError:   8,
					config.SeverityWarning: 3,
					config.SeverityInfo:    1,
				},
			},
			want: "12 issues (8 errors, 3 warnings, 1 info) in 3 files\n",
		},
		{
			name: "one issue",
			stats: runner.Stats{
				FilesWithIssues:      1,
				ViolationsTotal:      1,
				ViolationsBySeverity: map[config.Severity]int{config.SeverityWarning: 1},
			},
			want: "1 issue (1 warning) in 1 file\n",
		},
		{
			name: "failures",
			stats: runner.Stats{
				RuleFailures: 2,
				FilesErrored: 1,
			},
			want: "0 issues in 0 files, 2 rule failures, 1 unreadable file\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatRuleBreakdown(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	rules := []analysis.RuleAnalysis{
		{
			RuleID: "MD009", RuleName: "no-trailing-spaces",
			Counts: analysis.Counts{Issues: 3, Warnings: 3},
			Files:  []string{"a.md", "b.md"},
		},
		{
			RuleID: "X1", RuleName: "broken",
			Counts:   analysis.Counts{Issues: 1, Errors: 1},
			Failures: 2,
			Files:    []string{"a.md"},
		},
	}

	want := "Issues by rule\n" +
		"  MD009  3 issues in 2 files\n" +
		"  X1     1 issue, 2 failures in 1 file\n" +
		"\n"
	assert.Equal(t, want, styles.FormatRuleBreakdown(rules, config.RuleFormatID))
	assert.Empty(t, styles.FormatRuleBreakdown(nil, config.RuleFormatID))
}

package analysis_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

func violation(id, name string, sev config.Severity) lint.Violation {
	return lint.Violation{RuleID: id, Rule: name, Severity: sev, Message: "msg"}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "a.md",
				Violations: []lint.Violation{
					violation("MD001", "heading-increment", config.SeverityError),
					violation("MD001", "heading-increment", config.SeverityError),
					violation("MD009", "no-trailing-spaces", config.SeverityWarning),
				},
			},
			{
				Path: "b.md",
				Violations: []lint.Violation{
					violation("MD009", "no-trailing-spaces", config.SeverityWarning),
					violation("MD042", "no-empty-links", config.SeverityInfo),
				},
				Failures: []lint.RuleFailure{
					{Rule: "broken", RuleID: "X001", Err: errors.New("boom")},
				},
			},
			{Path: "clean.md"},
			{Path: "gone.md", Error: errors.New("file not found")},
		},
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())

	require.NotNil(t, report)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	totals := analysis.Analyze(sampleResult(), analysis.DefaultOptions()).Totals

	assert.Equal(t, analysis.Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          5,
		Errors:          2,
		Warnings:        2,
		Infos:           1,
		RuleFailures:    1,
	}, totals)
	assert.True(t, totals.HasIssues())
	assert.True(t, totals.HasErrors())
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())
	require.Len(t, report.ByRule, 4)

	// Equal counts fall back to rule ID order.
	ids := make([]string, 0, len(report.ByRule))
	for _, r := range report.ByRule {
		ids = append(ids, r.RuleID)
	}
	assert.Equal(t, []string{"MD001", "MD009", "MD042", "X001"}, ids)

	md009 := report.ByRule[1]
	assert.Equal(t, "no-trailing-spaces", md009.RuleName)
	assert.Equal(t, 2, md009.Warnings)
	assert.Equal(t, []string{"a.md", "b.md"}, md009.Files)

	broken := report.ByRule[3]
	assert.Equal(t, 1, broken.Failures)
	assert.Zero(t, broken.Issues)
	assert.Equal(t, []string{"b.md"}, broken.Files)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())
	require.Len(t, report.ByFile, 2)

	a := report.ByFile[0]
	assert.Equal(t, "a.md", a.Path)
	assert.Equal(t, analysis.Counts{Issues: 3, Errors: 2, Warnings: 1}, a.Counts)
	assert.Equal(t, []string{"MD001", "MD009"}, a.Rules)

	b := report.ByFile[1]
	assert.Equal(t, "b.md", b.Path)
	assert.Equal(t, 1, b.Failures)
	assert.Equal(t, []string{"MD009", "MD042", "X001"}, b.Rules)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts analysis.Options
		want []string
	}{
		{
			name: "count descending",
			opts: analysis.Options{SortBy: analysis.SortByCount, SortDesc: true},
			want: []string{"MD001", "MD009", "MD042", "X001"},
		},
		{
			name: "count ascending",
			opts: analysis.Options{SortBy: analysis.SortByCount},
			want: []string{"X001", "MD042", "MD001", "MD009"},
		},
		{
			name: "alpha",
			opts: analysis.Options{SortBy: analysis.SortByAlpha},
			want: []string{"MD001", "MD009", "MD042", "X001"},
		},
		{
			name: "alpha descending",
			opts: analysis.Options{SortBy: analysis.SortByAlpha, SortDesc: true},
			want: []string{"X001", "MD042", "MD009", "MD001"},
		},
		{
			name: "severity descending",
			opts: analysis.Options{SortBy: analysis.SortBySeverity, SortDesc: true},
			want: []string{"MD001", "MD009", "MD042", "X001"},
		},
		{
			name: "invalid falls back to count",
			opts: analysis.Options{SortBy: "bogus", SortDesc: true},
			want: []string{"MD001", "MD009", "MD042", "X001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := analysis.Analyze(sampleResult(), tt.opts)
			got := make([]string, 0, len(report.ByRule))
			for _, r := range report.ByRule {
				got = append(got, r.RuleID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	got, err := analysis.ParseSortField("severity")
	require.NoError(t, err)
	assert.Equal(t, analysis.SortBySeverity, got)

	_, err = analysis.ParseSortField("size")
	require.Error(t, err)
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "work")
	tests := []struct {
		name    string
		path    string
		workDir string
		want    string
	}{
		{name: "no working dir", path: filepath.Join(root, "a.md"), want: filepath.Join(root, "a.md")},
		{name: "beneath", path: filepath.Join(root, "docs", "a.md"), workDir: root, want: filepath.Join("docs", "a.md")},
		{name: "outside", path: filepath.Join(string(filepath.Separator), "other", "a.md"), workDir: root, want: filepath.Join(string(filepath.Separator), "other", "a.md")},
		{name: "already relative", path: "a.md", workDir: root, want: "a.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, analysis.RelativePath(tt.path, tt.workDir))
		})
	}
}

package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func testDescriptor() lint.Descriptor {
	return lint.Descriptor{ID: "T001", Name: "test-rule"}
}

func TestReporter_ReportError(t *testing.T) {
	t.Parallel()

	r := lint.NewReporter(testDescriptor(), config.SeverityError, 10)
	r.ReportError(4, 6, "second")
	r.ReportError(0, 0, "empty range")
	r.ReportNode(mdast.NewNode(mdast.NodeText, mdast.Span(2, 10)), "node")

	require.Equal(t, 3, r.Len())
	got := r.Violations()
	assert.Equal(t, lint.Violation{
		Rule: "test-rule", RuleID: "T001", Severity: config.SeverityError,
		Start: 4, End: 6, Message: "second",
	}, got[0])
	assert.Equal(t, mdast.Span(0, 0), got[1].Range())
	assert.Equal(t, "node", got[2].Message)

	got[0].Message = "mutated"
	assert.Equal(t, "second", r.Violations()[0].Message)
}

func TestReporter_Misuse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"start after end", 5, 3, "rule test-rule reported start 5 after end 3"},
		{"negative start", -1, 3, "rule test-rule reported range [-1,3) outside source of length 10"},
		{"end past source", 8, 11, "rule test-rule reported range [8,11) outside source of length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := lint.NewReporter(testDescriptor(), config.SeverityWarning, 10)
			assert.PanicsWithError(t, tt.want, func() {
				r.ReportError(tt.start, tt.end, "bad")
			})
			assert.Zero(t, r.Len())
		})
	}
}

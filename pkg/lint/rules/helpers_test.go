package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

// finding is the part of a violation rule tests compare.
type finding struct {
	Start, End int
	Message    string
}

func parse(t *testing.T, flavor, src string) *lint.Document {
	t.Helper()

	snapshot, err := goldmark.New(flavor).Parse(context.Background(), "test.md", []byte(src))
	require.NoError(t, err)

	doc, err := lint.NewDocument(snapshot)
	require.NoError(t, err)
	return doc
}

// check runs a single rule over src with CommonMark parsing.
func check(t *testing.T, rule lint.Rule, src string, configure ...lint.Configure) []finding {
	t.Helper()
	return checkFlavor(t, goldmark.FlavorCommonMark, rule, src, configure...)
}

func checkFlavor(t *testing.T, flavor string, rule lint.Rule, src string, configure ...lint.Configure) []finding {
	t.Helper()

	var setup lint.Configure
	if len(configure) > 0 {
		setup = configure[0]
	}
	engine, err := lint.NewEngine(map[string]lint.Entry{
		rule.Descriptor().Name: {Rule: rule, Configure: setup},
	}, lint.WithConcurrency(1))
	require.NoError(t, err)

	result := engine.Run(parse(t, flavor, src))
	require.Empty(t, result.Failures)

	out := []finding{}
	for _, v := range result.Violations {
		require.Equal(t, rule.Descriptor().Name, v.Rule)
		require.LessOrEqual(t, v.End, len(src))
		out = append(out, finding{Start: v.Start, End: v.End, Message: v.Message})
	}
	return out
}

// set returns a Configure that sets one parameter.
func set(name string, value any) lint.Configure {
	return func(s *lint.RuleSetup) { s.Set(name, value) }
}

// spansOf returns the source text of each finding.
func spansOf(src string, findings []finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, src[f.Start:f.End])
	}
	return out
}

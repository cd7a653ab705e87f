package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

// funcRule is a configurable rule for engine tests.
type funcRule struct {
	lint.BaseRule
	visit func(ctx *lint.RuleContext) error
}

func (r *funcRule) Visit(ctx *lint.RuleContext) error {
	if r.visit == nil {
		return nil
	}
	return r.visit(ctx)
}

func newFuncRule(id, name string, visit func(ctx *lint.RuleContext) error, params ...lint.Param) *funcRule {
	return &funcRule{
		BaseRule: lint.NewBaseRule(id, name, name+" test rule", []string{"test"}, params...),
		visit:    visit,
	}
}

// reportAt returns a visit func that reports fixed ranges.
func reportAt(spans ...[2]int) func(ctx *lint.RuleContext) error {
	return func(ctx *lint.RuleContext) error {
		for _, s := range spans {
			ctx.Report(s[0], s[1], "found")
		}
		return nil
	}
}

func parseDoc(t *testing.T, src string) *lint.Document {
	t.Helper()

	snap, err := goldmark.New(goldmark.FlavorCommonMark).Parse(context.Background(), "test.md", []byte(src))
	require.NoError(t, err)

	doc, err := lint.NewDocument(snap)
	require.NoError(t, err)
	return doc
}

func sources(doc *lint.Document, nodes []*mdast.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, string(doc.Text(n)))
	}
	return out
}

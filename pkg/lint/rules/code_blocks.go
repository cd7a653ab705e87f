package rules

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// NoSpaceInCodeRule reports code spans with leading or trailing whitespace.
type NoSpaceInCodeRule struct {
	lint.BaseRule
}

// NewNoSpaceInCodeRule creates a new code span whitespace rule.
func NewNoSpaceInCodeRule() *NoSpaceInCodeRule {
	return &NoSpaceInCodeRule{
		BaseRule: lint.NewBaseRule(
			"MD038",
			"no-space-in-code",
			"Spaces inside code span elements",
			[]string{"whitespace", "code"},
		),
	}
}

// Visit compares each code span's raw content with its trimmed form.
func (r *NoSpaceInCodeRule) Visit(ctx *lint.RuleContext) error {
	for _, span := range ctx.Doc.InlineCode() {
		inner := span.Inline.Text
		if len(bytes.TrimSpace(inner)) != len(inner) {
			ctx.ReportNode(span, r.Descriptor().Description)
		}
	}
	return nil
}

// CodeBlockStyle represents the style of code blocks.
type CodeBlockStyle string

const (
	// CodeBlockFenced uses fenced code blocks (```).
	CodeBlockFenced CodeBlockStyle = "fenced"
	// CodeBlockIndented uses indented code blocks.
	CodeBlockIndented CodeBlockStyle = "indented"
	// CodeBlockConsistent uses whatever style is first encountered.
	CodeBlockConsistent CodeBlockStyle = "consistent"
)

func codeBlockStyleOf(block *mdast.Node) CodeBlockStyle {
	if block.Block.CodeBlock.Indented {
		return CodeBlockIndented
	}
	return CodeBlockFenced
}

func (s CodeBlockStyle) description() string {
	switch s {
	case CodeBlockIndented:
		return "Indented"
	case CodeBlockConsistent:
		return "Consistent"
	default:
		return "Fenced"
	}
}

// CodeBlockStyleRule enforces a single code block style.
type CodeBlockStyleRule struct {
	lint.BaseRule
}

// NewCodeBlockStyleRule creates a new code block style rule.
func NewCodeBlockStyleRule() *CodeBlockStyleRule {
	return &CodeBlockStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD046",
			"code-block-style",
			"Code block style",
			[]string{"code"},
			lint.EnumParam("style", string(CodeBlockFenced),
				[]string{string(CodeBlockFenced), string(CodeBlockIndented), string(CodeBlockConsistent)},
				"Code block style to require, or consistent to follow the first block"),
		),
	}
}

// Visit reports code blocks that differ from the expected style.
func (r *CodeBlockStyleRule) Visit(ctx *lint.RuleContext) error {
	blocks := ctx.Doc.CodeBlocks()
	if len(blocks) == 0 {
		return nil
	}

	configured := CodeBlockStyle(ctx.Config.String("style"))
	expected := configured
	if configured == CodeBlockConsistent {
		expected = codeBlockStyleOf(blocks[0])
	}

	for _, block := range blocks {
		actual := codeBlockStyleOf(block)
		if actual == expected {
			continue
		}
		ctx.ReportNode(block, fmt.Sprintf(
			"Code block expected in %s style but is %s. Configuration: style=%s.",
			expected.description(), actual.description(), configured.description()))
	}
	return nil
}

package rules

import (
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// BulletStyle represents the style of unordered list bullets.
type BulletStyle string

const (
	// BulletDash uses "-" as the bullet marker.
	BulletDash BulletStyle = "dash"
	// BulletAsterisk uses "*" as the bullet marker.
	BulletAsterisk BulletStyle = "asterisk"
	// BulletPlus uses "+" as the bullet marker.
	BulletPlus BulletStyle = "plus"
	// BulletConsistent uses whatever style the first item has.
	BulletConsistent BulletStyle = "consistent"
)

// bulletStyleOf returns the bullet style for a marker character.
func bulletStyleOf(marker byte) BulletStyle {
	switch marker {
	case '*':
		return BulletAsterisk
	case '+':
		return BulletPlus
	default:
		return BulletDash
	}
}

func (s BulletStyle) description() string {
	switch s {
	case BulletAsterisk:
		return "Asterisk '*'"
	case BulletPlus:
		return "Plus '+'"
	case BulletConsistent:
		return "Consistent"
	default:
		return "Dash '-'"
	}
}

// UlStyleRule enforces a single bullet marker for unordered list items.
type UlStyleRule struct {
	lint.BaseRule
}

// NewUlStyleRule creates a new unordered list style rule.
func NewUlStyleRule() *UlStyleRule {
	return &UlStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD004",
			"ul-style",
			"Unordered list style",
			[]string{"bullet", "ul"},
			lint.EnumParam("style", string(BulletDash),
				[]string{string(BulletDash), string(BulletAsterisk), string(BulletPlus), string(BulletConsistent)},
				"Bullet marker to require, or consistent to follow the first item"),
		),
	}
}

// Visit reports every unordered list item whose marker differs from the
// configured style. With style=consistent the first item sets the style.
func (r *UlStyleRule) Visit(ctx *lint.RuleContext) error {
	items := ctx.Doc.UnorderedListItems()
	if len(items) == 0 {
		return nil
	}

	configured := BulletStyle(ctx.Config.String("style"))
	expected := configured
	if configured == BulletConsistent {
		expected = bulletStyleOf(items[0].Block.ListItem.Marker)
	}

	for _, item := range items {
		actual := bulletStyleOf(item.Block.ListItem.Marker)
		if actual == expected {
			continue
		}
		ctx.ReportNode(item, fmt.Sprintf(
			"Unordered list item expected in %s style but is %s. Configuration: style=%s.",
			expected.description(), actual.description(), configured.description()))
	}
	return nil
}

// UlIndentRule checks the indentation of nested unordered list items.
type UlIndentRule struct {
	lint.BaseRule
}

// NewUlIndentRule creates a new unordered list indentation rule.
func NewUlIndentRule() *UlIndentRule {
	return &UlIndentRule{
		BaseRule: lint.NewBaseRule(
			"MD007",
			"ul-indent",
			"Unordered list indentation",
			[]string{"bullet", "ul", "indentation"},
			lint.IntParam("indent", 2, "Spaces of indentation per nesting level").AtLeast(1),
		),
	}
}

// Visit reports unordered items not indented by level*indent columns.
// Items nested under an ordered list are skipped, since their indentation
// follows the width of the ordered marker.
func (r *UlIndentRule) Visit(ctx *lint.RuleContext) error {
	indent := ctx.Config.Int("indent")
	for _, item := range ctx.Doc.UnorderedListItems() {
		if underOrderedList(item) {
			continue
		}
		attrs := item.Block.ListItem
		if attrs.Indent != attrs.Level*indent {
			ctx.ReportNode(item, r.Descriptor().Description)
		}
	}
	return nil
}

func underOrderedList(item *mdast.Node) bool {
	for n := item.Parent; n != nil; n = n.Parent {
		if n.Kind == mdast.NodeListItem && n.Block != nil && n.Block.ListItem != nil && n.Block.ListItem.Ordered {
			return true
		}
	}
	return false
}

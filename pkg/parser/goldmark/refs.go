package goldmark

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// refDefPattern matches a single-line reference definition once container
// prefixes have been stripped: [label]: destination "optional title".
var refDefPattern = regexp.MustCompile(
	`^\[((?:[^\[\]\\]|\\.)+)\]:[ \t]*(<[^<>\n]*>|\S+)(?:[ \t]+("[^"]*"|'[^']*'|\([^()]*\)))?[ \t]*$`,
)

// defined reports whether goldmark registered a definition for label.
func (m *mapper) defined(label []byte) bool {
	_, ok := m.pctx.Reference(util.ToLinkReference(label))
	return ok
}

// collectDefinitions restores the reference definitions goldmark removes
// from the tree. Only lines outside every leaf block are considered, and a
// match is kept only when goldmark accepted a definition with that label.
// Definitions spanning several lines are not recovered.
func (m *mapper) collectDefinitions(doc *mdast.Node) {
	covered := m.coveredLines(doc)

	for idx, line := range m.file.Lines {
		if covered[idx] {
			continue
		}

		start := m.skipContainerPrefix(line.StartOffset, line.NewlineStart)
		text := m.content[start:line.NewlineStart]
		match := refDefPattern.FindSubmatchIndex(text)
		if match == nil {
			continue
		}

		label := text[match[2]:match[3]]
		if !m.defined(label) {
			continue
		}

		attrs := &mdast.LinkAttrs{
			Destination:    string(text[match[4]:match[5]]),
			ReferenceLabel: string(label),
			ReferenceStyle: mdast.RefStyleDefinition,
		}
		if len(attrs.Destination) >= 2 && attrs.Destination[0] == '<' {
			attrs.Destination = attrs.Destination[1 : len(attrs.Destination)-1]
			attrs.AngleBrackets = true
		}
		if match[6] >= 0 {
			attrs.Title = string(text[match[6]+1 : match[7]-1])
		}

		node := mdast.NewNode(mdast.NodeReferenceDefinition, m.span(start, m.trimRight(start, line.NewlineStart)))
		node.Block = &mdast.BlockAttrs{Reference: attrs}
		insertInOrder(containerFor(doc, start), node)
	}
}

// coveredLines marks every line that belongs to a non-empty leaf block.
func (m *mapper) coveredLines(doc *mdast.Node) []bool {
	covered := make([]bool, len(m.file.Lines))

	//nolint:errcheck // the callback never fails
	mdast.Walk(doc, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeParagraph, mdast.NodeHeading, mdast.NodeCodeBlock,
			mdast.NodeHTMLBlock, mdast.NodeThematicBreak, mdast.NodeRaw:
		default:
			return nil
		}
		if n.Range.IsEmpty() {
			return mdast.SkipChildren
		}
		first := m.file.LineIndex(n.Range.StartOffset)
		last := m.file.LineIndex(max(n.Range.EndOffset-1, n.Range.StartOffset))
		for i := first; i <= last; i++ {
			covered[i] = true
		}
		return mdast.SkipChildren
	})

	return covered
}

// skipContainerPrefix skips indentation, blockquote markers and list markers.
func (m *mapper) skipContainerPrefix(start, end int) int {
	i := start
	for i < end {
		c := m.content[i]
		switch {
		case isSpace(c) || c == '>':
			i++
		case isBullet(c) && i+1 < end && isSpace(m.content[i+1]):
			i += 2
		case isDigit(c):
			j := i
			for j < end && isDigit(m.content[j]) {
				j++
			}
			if j+1 < end && (m.content[j] == '.' || m.content[j] == ')') && isSpace(m.content[j+1]) {
				i = j + 2
				continue
			}
			return i
		default:
			return i
		}
	}
	return i
}

// containerFor returns the deepest blockquote or list item covering offset.
func containerFor(n *mdast.Node, offset int) *mdast.Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if !child.Range.Contains(offset) {
			continue
		}
		switch child.Kind {
		case mdast.NodeBlockquote, mdast.NodeListItem:
			return containerFor(child, offset)
		case mdast.NodeList:
			if c := containerFor(child, offset); c != child {
				return c
			}
		}
	}
	return n
}

// insertInOrder inserts node among parent's children by start offset.
func insertInOrder(parent, node *mdast.Node) {
	for child := parent.FirstChild; child != nil; child = child.Next {
		if child.Range.StartOffset > node.Range.StartOffset {
			mdast.InsertBefore(child, node)
			return
		}
	}
	mdast.AppendChild(parent, node)
}

// refSpan is an unresolved reference found inside plain text.
type refSpan struct {
	start, end         int
	textStart, textEnd int
	label              []byte
	style              mdast.ReferenceStyle
}

// splitReferences turns unresolved bracketed references that goldmark left
// as plain text into NodeLinkReference nodes.
func (m *mapper) splitReferences(root *mdast.Node) {
	var parents []*mdast.Node

	//nolint:errcheck // the callback never fails
	mdast.Walk(root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeLink, mdast.NodeImage, mdast.NodeCodeSpan, mdast.NodeCodeBlock:
			return mdast.SkipChildren
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			if child.Kind == mdast.NodeText {
				parents = append(parents, n)
				break
			}
		}
		return nil
	})

	for _, parent := range parents {
		m.splitRuns(parent)
	}
}

// splitRuns rewrites each run of source-contiguous text children of parent.
func (m *mapper) splitRuns(parent *mdast.Node) {
	child := parent.FirstChild
	for child != nil {
		if child.Kind != mdast.NodeText || child.Range.IsEmpty() {
			child = child.Next
			continue
		}

		run := []*mdast.Node{child}
		next := child.Next
		for next != nil && next.Kind == mdast.NodeText && !next.Range.IsEmpty() &&
			next.Range.StartOffset == run[len(run)-1].Range.EndOffset {
			run = append(run, next)
			next = next.Next
		}

		m.rewriteRun(run)
		child = next
	}
}

func (m *mapper) rewriteRun(run []*mdast.Node) {
	start, end := run[0].Range.StartOffset, run[len(run)-1].Range.EndOffset
	refs := m.findReferences(start, end)
	if len(refs) == 0 {
		return
	}

	var nodes []*mdast.Node
	cursor := start
	for _, ref := range refs {
		if ref.start > cursor {
			nodes = append(nodes, mdast.NewText(m.content, mdast.Span(cursor, ref.start)))
		}

		node := mdast.NewNode(mdast.NodeLinkReference, mdast.Span(ref.start, ref.end))
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			ReferenceLabel: string(ref.label),
			ReferenceStyle: ref.style,
		}}
		mdast.AppendChild(node, mdast.NewText(m.content, mdast.Span(ref.textStart, ref.textEnd)))
		nodes = append(nodes, node)

		cursor = ref.end
	}
	if cursor < end {
		nodes = append(nodes, mdast.NewText(m.content, mdast.Span(cursor, end)))
	}

	for _, n := range nodes {
		mdast.InsertBefore(run[0], n)
	}
	for _, old := range run {
		mdast.RemoveChild(old.Parent, old)
	}
}

// findReferences scans content[start:end] for bracketed labels that do not
// resolve to any definition. Image references are ignored.
func (m *mapper) findReferences(start, end int) []refSpan {
	var refs []refSpan
	c := m.content

	for i := start; i < end; i++ {
		if c[i] == '\\' {
			i++
			continue
		}
		if c[i] != '[' {
			continue
		}

		closing := m.matchLabel(i, end)
		if closing < 0 {
			continue
		}
		if i > 0 && c[i-1] == '!' && (i < 2 || c[i-2] != '\\') {
			i = closing
			if closing+1 < end && c[closing+1] == '[' {
				if k := m.matchLabel(closing+1, end); k >= 0 {
					i = k
				}
			}
			continue
		}
		if len(bytes.TrimSpace(c[i+1:closing])) == 0 {
			i = closing
			continue
		}

		ref := refSpan{
			start: i, end: closing + 1,
			textStart: i + 1, textEnd: closing,
			label: c[i+1 : closing],
			style: mdast.RefStyleShortcut,
		}
		if closing+1 < end && c[closing+1] == '[' {
			if k := m.matchLabel(closing+1, end); k >= 0 {
				ref.end = k + 1
				if inner := c[closing+2 : k]; len(inner) == 0 {
					ref.style = mdast.RefStyleCollapsed
				} else {
					ref.style = mdast.RefStyleFull
					ref.label = inner
				}
			}
		}

		i = ref.end - 1
		if m.defined(ref.label) {
			continue
		}
		refs = append(refs, ref)
	}

	return refs
}

// matchLabel returns the index of the ']' closing the label opened at open,
// or -1 when the label is unterminated or nests another '['.
func (m *mapper) matchLabel(open, end int) int {
	for j := open + 1; j < end; j++ {
		switch m.content[j] {
		case '\\':
			j++
		case '[':
			return -1
		case ']':
			return j
		}
	}
	return -1
}

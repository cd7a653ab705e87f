package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// Nodes are mapped in document order while a cursor tracks the end of the
// previously mapped sibling. Nodes goldmark leaves without any position
// (thematic breaks, empty items, autolinks) are located by scanning forward
// from the cursor.
type mapper struct {
	file    *mdast.FileSnapshot
	content []byte
	pctx    parser.Context
}

func newMapper(file *mdast.FileSnapshot, pctx parser.Context) *mapper {
	return &mapper{file: file, content: file.Content, pctx: pctx}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument(len(m.content))
	m.mapChildren(gmDoc, doc, 0)

	fitRanges(doc)
	m.collectDefinitions(doc)
	m.splitReferences(doc)
	m.annotateListItems(doc)

	return doc
}

// mapChildren maps all children of gmParent into parent, advancing the cursor.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node, cursor int) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapNode(child, cursor)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)
		if node.Range.EndOffset > cursor {
			cursor = node.Range.EndOffset
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node. It returns nil
// for paragraphs goldmark emptied by extracting reference definitions.
func (m *mapper) mapNode(gmNode ast.Node, cursor int) *mdast.Node {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		return m.mapHeading(gmn, cursor)

	case *ast.Paragraph, *ast.TextBlock:
		if gmNode.Lines().Len() == 0 && !gmNode.HasChildren() {
			return nil
		}
		node := mdast.NewNode(mdast.NodeParagraph, m.blockLines(gmNode, cursor))
		m.mapChildren(gmNode, node, node.Range.StartOffset)
		return node

	case *ast.List:
		return m.mapList(gmn, cursor)

	case *ast.ListItem:
		return m.mapListItem(gmn, cursor)

	case *ast.Blockquote:
		return m.mapBlockquote(gmn, cursor)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn, cursor)

	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn, cursor)

	case *ast.ThematicBreak:
		start := m.seekContent(cursor)
		return mdast.NewNode(mdast.NodeThematicBreak, m.span(start, m.lineEnd(start)))

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn, cursor)

	// Inline-level nodes.
	case *ast.Text:
		return mdast.NewText(m.content, m.span(gmn.Segment.Start, gmn.Segment.Stop))

	case *ast.String:
		node := mdast.NewNode(mdast.NodeText, m.span(cursor, cursor))
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}
		return node

	case *ast.Emphasis:
		return m.mapEmphasis(gmn, cursor)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn, cursor)

	case *ast.Link:
		return m.mapLink(gmn, mdast.NodeLink, string(gmn.Destination), string(gmn.Title), cursor)

	case *ast.Image:
		return m.mapLink(gmn, mdast.NodeImage, string(gmn.Destination), string(gmn.Title), cursor)

	case *ast.AutoLink:
		return m.mapAutoLink(gmn, cursor)

	case *ast.RawHTML:
		node := mdast.NewNode(mdast.NodeHTMLInline, m.span(cursor, cursor))
		if gmn.Segments != nil && gmn.Segments.Len() > 0 {
			first, last := gmn.Segments.At(0), gmn.Segments.At(gmn.Segments.Len()-1)
			node.Range = m.span(first.Start, last.Stop)
		}
		return node

	// GFM extension nodes.
	case *east.Strikethrough:
		node := mdast.NewNode(mdast.NodeRaw, m.span(cursor, cursor))
		m.mapChildren(gmn, node, cursor)
		m.spanChildren(node)
		node.Range = m.widen(node.Range, '~')
		return node

	case *east.TaskCheckBox:
		start := cursor
		if idx := bytes.IndexByte(m.content[cursor:], '['); idx >= 0 {
			start = cursor + idx
		}
		return mdast.NewNode(mdast.NodeRaw, m.span(start, start+len("[ ]")))

	default:
		// Tables and any other extension nodes.
		node := mdast.NewNode(mdast.NodeRaw, m.span(cursor, cursor))
		if gmNode.Type() == ast.TypeBlock && gmNode.Lines().Len() > 0 {
			node.Range = m.blockLines(gmNode, cursor)
		}
		m.mapChildren(gmNode, node, node.Range.StartOffset)
		m.spanChildren(node)
		return node
	}
}

func (m *mapper) mapHeading(h *ast.Heading, cursor int) *mdast.Node {
	r, setext := m.headingRange(h, cursor)
	node := mdast.NewNode(mdast.NodeHeading, r)
	node.Block = &mdast.BlockAttrs{HeadingLevel: h.Level, Setext: setext}
	m.mapChildren(h, node, r.StartOffset)
	return node
}

func (m *mapper) mapList(list *ast.List, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList, m.span(cursor, cursor))
	node.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		Marker:      list.Marker,
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}}
	m.mapChildren(list, node, cursor)
	if node.FirstChild == nil {
		start := m.seekContent(cursor)
		node.Range = m.span(start, m.lineEnd(start))
		return node
	}
	m.spanChildren(node)
	return node
}

func (m *mapper) mapListItem(item *ast.ListItem, cursor int) *mdast.Node {
	var marker byte
	ordered := false
	if list, ok := item.Parent().(*ast.List); ok {
		marker = list.Marker
		ordered = list.IsOrdered()
	}

	node := mdast.NewNode(mdast.NodeListItem, m.span(cursor, cursor))
	node.Block = &mdast.BlockAttrs{ListItem: &mdast.ListItemAttrs{Marker: marker, Ordered: ordered}}
	m.mapChildren(item, node, cursor)

	if node.FirstChild == nil {
		start := m.seekContent(cursor)
		node.Range = m.span(start, m.markerEnd(start))
		return node
	}

	start := m.markerStart(node.FirstChild.Range.StartOffset, ordered)
	if start < cursor {
		start = node.FirstChild.Range.StartOffset
	}
	node.Range = m.span(start, node.LastChild.Range.EndOffset)
	return node
}

func (m *mapper) mapBlockquote(bq *ast.Blockquote, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeBlockquote, m.span(cursor, cursor))
	m.mapChildren(bq, node, cursor)

	if node.FirstChild == nil {
		start := m.seekBlock(cursor)
		node.Range = m.span(start, m.lineEnd(start))
		return node
	}

	start := m.backOverSpaces(node.FirstChild.Range.StartOffset)
	if start > 0 && m.content[start-1] == '>' {
		start--
	}
	node.Range = m.span(start, node.LastChild.Range.EndOffset)
	return node
}

func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock, cursor int) *mdast.Node {
	attrs := &mdast.CodeBlockAttrs{}
	if cb.Info != nil {
		attrs.Info = string(cb.Info.Segment.Value(m.content))
	}

	r, char, length := m.fencedRange(cb, cursor)
	attrs.FenceChar = char
	attrs.FenceLength = length

	node := mdast.NewNode(mdast.NodeCodeBlock, r)
	node.Block = &mdast.BlockAttrs{CodeBlock: attrs}
	return node
}

func (m *mapper) mapIndentedCodeBlock(cb *ast.CodeBlock, cursor int) *mdast.Node {
	r := m.blockLines(cb, cursor)
	r.StartOffset = m.backOverSpaces(r.StartOffset)

	node := mdast.NewNode(mdast.NodeCodeBlock, r)
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}
	return node
}

func (m *mapper) mapHTMLBlock(hb *ast.HTMLBlock, cursor int) *mdast.Node {
	r := m.blockLines(hb, cursor)
	r.StartOffset = m.backOverSpaces(r.StartOffset)
	if hb.HasClosure() {
		if end := m.trimRight(r.StartOffset, hb.ClosureLine.Stop); end > r.EndOffset {
			r.EndOffset = end
		}
	}
	return mdast.NewNode(mdast.NodeHTMLBlock, r)
}

func (m *mapper) mapEmphasis(em *ast.Emphasis, cursor int) *mdast.Node {
	kind := mdast.NodeEmphasis
	if em.Level >= 2 {
		kind = mdast.NodeStrong
	}

	node := mdast.NewNode(kind, m.span(cursor, cursor))
	node.Inline = &mdast.InlineAttrs{EmphasisLevel: em.Level}
	m.mapChildren(em, node, cursor)
	if node.FirstChild != nil {
		node.Range = m.span(
			node.FirstChild.Range.StartOffset-em.Level,
			node.LastChild.Range.EndOffset+em.Level,
		)
	}
	return node
}

func (m *mapper) mapCodeSpan(cs *ast.CodeSpan, cursor int) *mdast.Node {
	r, inner := m.codeSpanRange(cs, cursor)
	node := mdast.NewNode(mdast.NodeCodeSpan, r)
	node.Inline = &mdast.InlineAttrs{Text: inner}
	return node
}

func (m *mapper) mapLink(gmNode ast.Node, kind mdast.NodeKind, dest, title string, cursor int) *mdast.Node {
	node := mdast.NewNode(kind, m.span(cursor, cursor))
	m.mapChildren(gmNode, node, cursor)

	r, tail := m.linkRange(node, kind == mdast.NodeImage, cursor)
	node.Range = r
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination:    dest,
		Title:          title,
		ReferenceLabel: tail.label,
		ReferenceStyle: tail.style,
		AngleBrackets:  tail.angle,
	}}
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink, m.span(cursor, cursor))
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination:    string(al.URL(m.content)),
		ReferenceStyle: mdast.RefStyleAutolink,
	}}

	label := al.Label(m.content)
	idx := bytes.Index(m.content[cursor:], label)
	if idx < 0 || len(label) == 0 {
		return node
	}

	start, end := cursor+idx, cursor+idx+len(label)
	mdast.AppendChild(node, mdast.NewText(m.content, m.span(start, end)))
	if start > 0 && end < len(m.content) && m.content[start-1] == '<' && m.content[end] == '>' {
		start--
		end++
	}
	node.Range = m.span(start, end)
	return node
}

// annotateListItems fills in nesting level and marker indentation for every item.
func (m *mapper) annotateListItems(doc *mdast.Node) {
	for _, item := range mdast.FindByKind(doc, mdast.NodeListItem) {
		attrs := item.Block.ListItem
		attrs.Level = item.Depth(mdast.NodeListItem)
		attrs.Indent = m.indentOf(item.Range.StartOffset, item.Depth(mdast.NodeBlockquote))
	}
}

// spanChildren sets node's range to the union of its children's ranges.
func (m *mapper) spanChildren(node *mdast.Node) {
	if node.FirstChild == nil {
		return
	}
	node.Range = m.span(node.FirstChild.Range.StartOffset, node.LastChild.Range.EndOffset)
}

// fitRanges grows every non-root node so that it covers all of its children.
func fitRanges(n *mdast.Node) {
	for child := n.FirstChild; child != nil; child = child.Next {
		fitRanges(child)
		if n.Kind == mdast.NodeDocument {
			continue
		}
		if child.Range.StartOffset < n.Range.StartOffset {
			n.Range.StartOffset = child.Range.StartOffset
		}
		if child.Range.EndOffset > n.Range.EndOffset {
			n.Range.EndOffset = child.Range.EndOffset
		}
	}
}

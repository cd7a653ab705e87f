package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// buildTestTree builds:
//
//	Document
//	  List
//	    ListItem
//	      Paragraph
//	        Text
//	      List
//	        ListItem
func buildTestTree() (*mdast.Node, []*mdast.Node) {
	doc := mdast.NewDocument(20)
	list := mdast.NewNode(mdast.NodeList, mdast.Span(0, 20))
	item := mdast.NewNode(mdast.NodeListItem, mdast.Span(0, 20))
	para := mdast.NewNode(mdast.NodeParagraph, mdast.Span(2, 5))
	text := mdast.NewNode(mdast.NodeText, mdast.Span(2, 5))
	inner := mdast.NewNode(mdast.NodeList, mdast.Span(8, 20))
	innerItem := mdast.NewNode(mdast.NodeListItem, mdast.Span(8, 20))

	mdast.AppendChild(doc, list)
	mdast.AppendChild(list, item)
	mdast.AppendChild(item, para)
	mdast.AppendChild(para, text)
	mdast.AppendChild(item, inner)
	mdast.AppendChild(inner, innerItem)

	return doc, []*mdast.Node{doc, list, item, para, text, inner, innerItem}
}

func TestNodeKind_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   mdast.NodeKind
		block  bool
		inline bool
		name   string
	}{
		{kind: mdast.NodeDocument, block: true, name: "Document"},
		{kind: mdast.NodeCodeBlock, block: true, name: "CodeBlock"},
		{kind: mdast.NodeReferenceDefinition, block: true, name: "ReferenceDefinition"},
		{kind: mdast.NodeText, inline: true, name: "Text"},
		{kind: mdast.NodeLinkReference, inline: true, name: "LinkReference"},
		{kind: mdast.NodeHTMLInline, inline: true, name: "HTMLInline"},
		{kind: mdast.NodeRaw, name: "Raw"},
		{kind: mdast.NodeKind(999), name: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := mdast.NewNode(tt.kind, mdast.SourceRange{})
			assert.Equal(t, tt.block, n.IsBlock())
			assert.Equal(t, tt.inline, n.IsInline())
			assert.Equal(t, tt.name, tt.kind.String())
		})
	}
}

func TestNode_DepthAndAncestor(t *testing.T) {
	t.Parallel()

	_, nodes := buildTestTree()
	item, innerItem, text := nodes[2], nodes[6], nodes[4]

	assert.Equal(t, 0, item.Depth(mdast.NodeListItem))
	assert.Equal(t, 1, innerItem.Depth(mdast.NodeListItem))
	assert.Equal(t, 2, innerItem.Depth(mdast.NodeList))
	assert.Same(t, item, text.Ancestor(mdast.NodeListItem))
	assert.Nil(t, item.Ancestor(mdast.NodeBlockquote))
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	doc, nodes := buildTestTree()

	var visited []*mdast.Node
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		visited = append(visited, n)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, nodes, visited)
}

func TestWalk_SkipChildrenAndStop(t *testing.T) {
	t.Parallel()

	doc, _ := buildTestTree()

	var kinds []mdast.NodeKind
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		kinds = append(kinds, n.Kind)
		if n.Kind == mdast.NodeParagraph {
			return mdast.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.NotContains(t, kinds, mdast.NodeText)

	stop := errors.New("stop")
	err = mdast.Walk(doc, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeListItem {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.NoError(t, mdast.Walk(nil, nil))
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc, nodes := buildTestTree()

	items := mdast.FindByKind(doc, mdast.NodeListItem)
	require.Len(t, items, 2)
	assert.Same(t, nodes[2], items[0])
	assert.Same(t, nodes[6], items[1])

	first := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeList })
	assert.Same(t, nodes[1], first)
	assert.Nil(t, mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeImage }))
}

func TestReplaceWith(t *testing.T) {
	t.Parallel()

	content := []byte("see (x)[y] here")
	para := mdast.NewNode(mdast.NodeParagraph, mdast.Span(0, len(content)))
	text := mdast.NewText(content, mdast.Span(0, len(content)))
	mdast.AppendChild(para, text)

	left := mdast.NewText(content, mdast.Span(0, 7))
	ref := mdast.NewNode(mdast.NodeLinkReference, mdast.Span(7, 10))
	right := mdast.NewText(content, mdast.Span(10, 15))
	mdast.ReplaceWith(text, left, ref, right)

	children := para.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "see (x)", string(children[0].Inline.Text))
	assert.Same(t, ref, children[1])
	assert.Same(t, left, ref.Prev)
	assert.Same(t, right, para.LastChild)
	assert.Nil(t, text.Parent)
}

func TestSourceRange(t *testing.T) {
	t.Parallel()

	r := mdast.Span(2, 6)
	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(6))
	assert.True(t, r.Covers(mdast.Span(3, 6)))
	assert.False(t, r.Covers(mdast.Span(1, 3)))
	assert.True(t, r.Valid(6))
	assert.False(t, r.Valid(5))
	assert.False(t, mdast.Span(3, 2).Valid(10))
	assert.True(t, mdast.Span(4, 4).IsEmpty())
	assert.Equal(t, "[2,6)", r.String())
}

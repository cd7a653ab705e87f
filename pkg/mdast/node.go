package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeReferenceDefinition

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeLinkReference
	NodeImage
	NodeHTMLInline

	// Fallback for unrecognized content (tables, extension nodes).
	NodeRaw
)

var nodeKindNames = [...]string{
	NodeDocument:            "Document",
	NodeParagraph:           "Paragraph",
	NodeHeading:             "Heading",
	NodeList:                "List",
	NodeListItem:            "ListItem",
	NodeBlockquote:          "Blockquote",
	NodeCodeBlock:           "CodeBlock",
	NodeThematicBreak:       "ThematicBreak",
	NodeHTMLBlock:           "HTMLBlock",
	NodeReferenceDefinition: "ReferenceDefinition",
	NodeText:                "Text",
	NodeEmphasis:            "Emphasis",
	NodeStrong:              "Strong",
	NodeCodeSpan:            "CodeSpan",
	NodeLink:                "Link",
	NodeLinkReference:       "LinkReference",
	NodeImage:               "Image",
	NodeHTMLInline:          "HTMLInline",
	NodeRaw:                 "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is a single element of the Markdown tree.
//
// Every node carries the half-open byte range it occupies in the source.
// Trees are built once by a parser and treated as read-only afterwards.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the [start, end) byte span of the node in the source.
	Range SourceRange

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind <= NodeReferenceDefinition
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind >= NodeText && n.Kind <= NodeHTMLInline
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Depth counts the ancestors of n that have the given kind.
func (n *Node) Depth(kind NodeKind) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			depth++
		}
	}
	return depth
}

// Ancestor returns the closest ancestor of the given kind, or nil.
func (n *Node) Ancestor(kind NodeKind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

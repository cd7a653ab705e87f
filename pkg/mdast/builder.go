package mdast

// NewNode creates a detached node of the given kind spanning r.
func NewNode(kind NodeKind, r SourceRange) *Node {
	return &Node{Kind: kind, Range: r}
}

// NewDocument creates a document root spanning content of the given length.
func NewDocument(length int) *Node {
	return NewNode(NodeDocument, Span(0, length))
}

// NewText creates a text node whose literal is the source slice it spans.
func NewText(content []byte, r SourceRange) *Node {
	n := NewNode(NodeText, r)
	n.Inline = &InlineAttrs{Text: content[r.StartOffset:r.EndOffset]}
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}
	sibling.Prev = newNode
}

// RemoveChild detaches child from parent. It is a no-op if child is not a child of parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceWith substitutes old with the given nodes, in order.
func ReplaceWith(old *Node, nodes ...*Node) {
	if old == nil || old.Parent == nil {
		return
	}
	for _, n := range nodes {
		InsertBefore(old, n)
	}
	RemoveChild(old.Parent, old)
}

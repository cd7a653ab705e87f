package lint

import (
	"errors"
	"slices"
	"sync"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Document is a read-only view over one parsed file.
//
// Node collections are built by a single walk of the tree on first access
// and shared by every rule in the run. Accessors return fresh slices sorted
// by start offset, so callers may reorder or filter them freely. The nodes
// themselves are shared and must not be modified.
type Document struct {
	file *mdast.FileSnapshot

	once  sync.Once
	index nodeIndex
}

// nodeIndex holds the node collections, each in document order.
type nodeIndex struct {
	headings   []*mdast.Node
	listItems  []*mdast.Node
	unordered  []*mdast.Node
	codeBlocks []*mdast.Node
	codeSpans  []*mdast.Node
	links      []*mdast.Node
	linkRefs   []*mdast.Node
	refDefs    []*mdast.Node
	allLinks   []*mdast.Node
}

// NewDocument validates the snapshot's tree and wraps it.
//
// Every node range must lie within the source text and within its parent's
// range, and siblings must appear in document order. The first offending
// node is returned as an *OffsetError.
func NewDocument(file *mdast.FileSnapshot) (*Document, error) {
	if file == nil || file.Root == nil {
		return nil, errors.New("document has no parsed tree")
	}
	if file.Root.Kind != mdast.NodeDocument {
		return nil, &OffsetError{
			Kind:   file.Root.Kind,
			Range:  file.Root.Range,
			Length: len(file.Content),
			Reason: "root is not a document node",
		}
	}
	if err := validateTree(file.Root, len(file.Content)); err != nil {
		return nil, err
	}
	return &Document{file: file}, nil
}

func validateTree(root *mdast.Node, length int) error {
	return mdast.Walk(root, func(n *mdast.Node) error {
		fail := func(reason string) error {
			return &OffsetError{Kind: n.Kind, Range: n.Range, Length: length, Reason: reason}
		}
		switch {
		case !n.Range.Valid(length):
			return fail("range outside source text")
		case n.Parent != nil && !n.Parent.Range.Covers(n.Range):
			return fail("range outside parent " + n.Parent.Kind.String() + " " + n.Parent.Range.String())
		case n.Prev != nil && n.Prev.Range.StartOffset > n.Range.StartOffset:
			return fail("starts before previous sibling")
		}
		return nil
	})
}

// Path returns the file path (may be empty for in-memory content).
func (d *Document) Path() string {
	return d.file.Path
}

// Source returns the raw source text. It must not be modified.
func (d *Document) Source() []byte {
	return d.file.Content
}

// Len returns the length of the source text in bytes.
func (d *Document) Len() int {
	return len(d.file.Content)
}

// Root returns the tree root.
func (d *Document) Root() *mdast.Node {
	return d.file.Root
}

// Snapshot returns the underlying FileSnapshot.
func (d *Document) Snapshot() *mdast.FileSnapshot {
	return d.file
}

// Text returns the raw source covered by the node.
func (d *Document) Text(n *mdast.Node) []byte {
	return d.file.Text(n.Range)
}

// Position resolves a byte offset to a 1-based line and column.
func (d *Document) Position(offset int) mdast.Position {
	return d.file.Position(offset)
}

// Headings returns all headings.
func (d *Document) Headings() []*mdast.Node {
	return slices.Clone(d.nodes().headings)
}

// ListItems returns all list items, ordered and unordered.
func (d *Document) ListItems() []*mdast.Node {
	return slices.Clone(d.nodes().listItems)
}

// UnorderedListItems returns the items of bullet lists.
func (d *Document) UnorderedListItems() []*mdast.Node {
	return slices.Clone(d.nodes().unordered)
}

// CodeBlocks returns fenced and indented code blocks.
func (d *Document) CodeBlocks() []*mdast.Node {
	return slices.Clone(d.nodes().codeBlocks)
}

// InlineCode returns all code spans.
func (d *Document) InlineCode() []*mdast.Node {
	return slices.Clone(d.nodes().codeSpans)
}

// Links returns inline links, autolinks and resolved reference links.
// Images are not included.
func (d *Document) Links() []*mdast.Node {
	return slices.Clone(d.nodes().links)
}

// LinkReferences returns bracketed references that did not resolve to a
// definition, such as [text][ref], [ref][] and [ref].
func (d *Document) LinkReferences() []*mdast.Node {
	return slices.Clone(d.nodes().linkRefs)
}

// ReferenceDefinitions returns all [label]: destination definitions.
func (d *Document) ReferenceDefinitions() []*mdast.Node {
	return slices.Clone(d.nodes().refDefs)
}

// AllLinks returns links, link references and reference definitions merged
// in document order.
func (d *Document) AllLinks() []*mdast.Node {
	return slices.Clone(d.nodes().allLinks)
}

func (d *Document) nodes() *nodeIndex {
	d.once.Do(d.build)
	return &d.index
}

// build walks the tree once and buckets nodes by kind.
func (d *Document) build() {
	idx := &d.index

	//nolint:errcheck // the callback never fails
	mdast.Walk(d.file.Root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeHeading:
			idx.headings = append(idx.headings, n)
		case mdast.NodeListItem:
			idx.listItems = append(idx.listItems, n)
			if n.Block != nil && n.Block.ListItem != nil && !n.Block.ListItem.Ordered {
				idx.unordered = append(idx.unordered, n)
			}
		case mdast.NodeCodeBlock:
			idx.codeBlocks = append(idx.codeBlocks, n)
		case mdast.NodeCodeSpan:
			idx.codeSpans = append(idx.codeSpans, n)
		case mdast.NodeLink:
			idx.links = append(idx.links, n)
			idx.allLinks = append(idx.allLinks, n)
		case mdast.NodeLinkReference:
			idx.linkRefs = append(idx.linkRefs, n)
			idx.allLinks = append(idx.allLinks, n)
		case mdast.NodeReferenceDefinition:
			idx.refDefs = append(idx.refDefs, n)
			idx.allLinks = append(idx.allLinks, n)
		}
		return nil
	})

	for _, nodes := range []*[]*mdast.Node{
		&idx.headings, &idx.listItems, &idx.unordered, &idx.codeBlocks,
		&idx.codeSpans, &idx.links, &idx.linkRefs, &idx.refDefs, &idx.allLinks,
	} {
		slices.SortStableFunc(*nodes, byStart)
	}
}

func byStart(a, b *mdast.Node) int {
	return a.Range.StartOffset - b.Range.StartOffset
}

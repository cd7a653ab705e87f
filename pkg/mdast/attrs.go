package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// Setext is true for underlined headings.
	Setext bool

	// List holds attributes for NodeList.
	List *ListAttrs

	// ListItem holds attributes for NodeListItem.
	ListItem *ListItemAttrs

	// CodeBlock holds attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// Reference holds attributes for NodeReferenceDefinition.
	Reference *LinkAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// Marker is the bullet ('-', '+', '*') or ordered delimiter ('.', ')').
	Marker byte

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// ListItemAttrs holds attributes for list item nodes.
type ListItemAttrs struct {
	// Marker is the bullet character or ordered delimiter of the item.
	Marker byte

	// Ordered is true when the item belongs to an ordered list.
	Ordered bool

	// Level is the nesting depth of the item: 0 for top-level items.
	Level int

	// Indent is the width in columns between the start of the item's line
	// (after any blockquote markers) and its marker. Tabs advance to the
	// next multiple of four.
	Indent int
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~'); zero for indented blocks.
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the info string (language identifier, etc.).
	Info string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the literal text for NodeText and the raw content between
	// the backtick delimiters for NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink, NodeImage and NodeLinkReference.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents full reference links: [text][label] or ![alt][label].
	RefStyleFull

	// RefStyleCollapsed represents collapsed reference links: [label][] or ![label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label] or ![label].
	RefStyleShortcut

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink

	// RefStyleDefinition represents a reference definition: [label]: url.
	RefStyleDefinition
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	case RefStyleAutolink:
		return "autolink"
	case RefStyleDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for links, link references and reference definitions.
type LinkAttrs struct {
	// Destination is the link URL. For resolved reference links it is the
	// destination of the matching definition.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceLabel is the label for reference-style links and definitions.
	ReferenceLabel string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle

	// AngleBrackets is true when the destination was written as <...>.
	AngleBrackets bool
}

// IsReference reports whether the link was written in reference style.
func (a *LinkAttrs) IsReference() bool {
	switch a.ReferenceStyle {
	case RefStyleFull, RefStyleCollapsed, RefStyleShortcut:
		return true
	default:
		return false
	}
}

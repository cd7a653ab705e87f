package goldmark

import (
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBullet(c byte) bool {
	return c == '-' || c == '+' || c == '*'
}

// span builds a range clamped to the content bounds with start <= end.
func (m *mapper) span(start, end int) mdast.SourceRange {
	start = min(max(start, 0), len(m.content))
	end = min(max(end, start), len(m.content))
	return mdast.Span(start, end)
}

// trimRight moves end back over trailing whitespace, never before start.
func (m *mapper) trimRight(start, end int) int {
	end = min(end, len(m.content))
	for end > start && isBlank(m.content[end-1]) {
		end--
	}
	return end
}

// lineEnd returns the end of the non-blank content on the line holding offset.
func (m *mapper) lineEnd(offset int) int {
	line := m.file.Lines[m.file.LineIndex(offset)]
	return max(m.trimRight(offset, line.NewlineStart), offset)
}

// seekBlank skips whitespace forward from offset.
func (m *mapper) seekBlank(offset int) int {
	for offset < len(m.content) && isBlank(m.content[offset]) {
		offset++
	}
	return offset
}

// seekContent skips whitespace, blockquote markers and reference
// definition lines forward from offset.
func (m *mapper) seekContent(offset int) int {
	for {
		for offset < len(m.content) && (isBlank(m.content[offset]) || m.content[offset] == '>') {
			offset++
		}
		next, ok := m.skipDefinition(offset)
		if !ok {
			return offset
		}
		offset = next
	}
}

// seekBlock is seekContent without skipping blockquote markers.
func (m *mapper) seekBlock(offset int) int {
	for {
		offset = m.seekBlank(offset)
		next, ok := m.skipDefinition(offset)
		if !ok {
			return offset
		}
		offset = next
	}
}

// skipDefinition returns the end of the line when a reference definition
// goldmark accepted starts at offset. Such lines leave no node behind, so
// position scans must step over them.
func (m *mapper) skipDefinition(offset int) (int, bool) {
	if offset >= len(m.content) || m.content[offset] != '[' {
		return offset, false
	}
	line := m.file.Lines[m.file.LineIndex(offset)]
	match := refDefPattern.FindSubmatch(m.content[offset:line.NewlineStart])
	if match == nil || !m.defined(match[1]) {
		return offset, false
	}
	return line.NewlineStart, true
}

// backOverSpaces moves offset back over spaces and tabs on the same line.
func (m *mapper) backOverSpaces(offset int) int {
	for offset > 0 && isSpace(m.content[offset-1]) {
		offset--
	}
	return offset
}

// widen grows r over runs of delim on both sides.
func (m *mapper) widen(r mdast.SourceRange, delim byte) mdast.SourceRange {
	for r.StartOffset > 0 && m.content[r.StartOffset-1] == delim {
		r.StartOffset--
	}
	for r.EndOffset < len(m.content) && m.content[r.EndOffset] == delim {
		r.EndOffset++
	}
	return r
}

// blockLines returns the range spanned by a block's line segments.
// Blocks without lines collapse to the next content after cursor.
func (m *mapper) blockLines(n ast.Node, cursor int) mdast.SourceRange {
	lines := n.Lines()
	if lines.Len() == 0 {
		start := m.seekContent(cursor)
		return m.span(start, start)
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	return m.span(first.Start, m.trimRight(first.Start, last.Stop))
}

// headingRange covers the opening hashes of ATX headings and the underline of
// setext headings. The boolean result reports a setext heading.
func (m *mapper) headingRange(h *ast.Heading, cursor int) (mdast.SourceRange, bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		start := m.seekContent(cursor)
		return m.span(start, m.lineEnd(start)), false
	}

	first, last := lines.At(0), lines.At(lines.Len()-1)
	start := m.backOverSpaces(first.Start)
	if start > 0 && m.content[start-1] == '#' {
		for start > 0 && m.content[start-1] == '#' {
			start--
		}
		return m.span(start, m.lineEnd(first.Start)), false
	}

	end := m.trimRight(first.Start, last.Stop)
	if next := m.file.LineIndex(last.Start) + 1; next < len(m.file.Lines) {
		underline := m.file.Lines[next]
		end = max(end, m.trimRight(underline.StartOffset, underline.NewlineStart))
	}
	return m.span(first.Start, end), true
}

// fencedRange locates the opening and closing fences of a fenced code block.
func (m *mapper) fencedRange(cb *ast.FencedCodeBlock, cursor int) (mdast.SourceRange, byte, int) {
	lines := cb.Lines()

	var openIdx int
	switch {
	case cb.Info != nil:
		openIdx = m.file.LineIndex(cb.Info.Segment.Start)
	case lines.Len() > 0:
		openIdx = max(m.file.LineIndex(lines.At(0).Start)-1, 0)
	default:
		openIdx = m.file.LineIndex(m.seekContent(cursor))
	}

	start, char, length := m.fenceAt(openIdx)
	if start < 0 {
		start = m.seekContent(cursor)
		return m.span(start, m.blockLines(cb, start).EndOffset), 0, 0
	}

	lastIdx := openIdx
	if lines.Len() > 0 {
		lastIdx = m.file.LineIndex(lines.At(lines.Len() - 1).Start)
	}
	end := m.lineEnd(max(m.file.Lines[lastIdx].StartOffset, start))

	if closeIdx := lastIdx + 1; closeIdx < len(m.file.Lines) {
		if pos := m.closingFence(closeIdx, char, length); pos >= 0 {
			end = m.lineEnd(pos)
		}
	}

	return m.span(start, end), char, length
}

// fenceAt finds the first fence run on a line.
func (m *mapper) fenceAt(lineIdx int) (int, byte, int) {
	line := m.file.Lines[lineIdx]
	for i := line.StartOffset; i < line.NewlineStart; i++ {
		c := m.content[i]
		if c != '`' && c != '~' {
			continue
		}
		j := i
		for j < line.NewlineStart && m.content[j] == c {
			j++
		}
		if j-i >= 3 {
			return i, c, j - i
		}
		i = j
	}
	return -1, 0, 0
}

// closingFence returns the offset of a closing fence on the given line, or -1.
func (m *mapper) closingFence(lineIdx int, char byte, length int) int {
	line := m.file.Lines[lineIdx]
	i := line.StartOffset
	for i < line.NewlineStart && (isSpace(m.content[i]) || m.content[i] == '>') {
		i++
	}
	pos := i
	for i < line.NewlineStart && m.content[i] == char {
		i++
	}
	if i-pos < length {
		return -1
	}
	for ; i < line.NewlineStart; i++ {
		if !isSpace(m.content[i]) {
			return -1
		}
	}
	return pos
}

// codeSpanRange returns the span including backtick delimiters and the raw
// source between the delimiters. goldmark strips one space from each end of
// the content, so the raw text is recovered from the source.
func (m *mapper) codeSpanRange(cs *ast.CodeSpan, cursor int) (mdast.SourceRange, []byte) {
	first, okFirst := cs.FirstChild().(*ast.Text)
	last, okLast := cs.LastChild().(*ast.Text)
	if !okFirst || !okLast {
		return m.span(cursor, cursor), nil
	}

	innerStart := first.Segment.Start
	if innerStart > 0 && m.content[innerStart-1] != '`' {
		innerStart--
	}
	innerEnd := last.Segment.Stop
	if innerEnd < len(m.content) && m.content[innerEnd] != '`' {
		innerEnd++
	}

	open := innerStart
	for open > 0 && m.content[open-1] == '`' {
		open--
	}
	closing := innerEnd
	for closing < len(m.content) && m.content[closing] == '`' {
		closing++
	}

	return m.span(open, closing), m.content[innerStart:innerEnd]
}

// linkTail describes the source following a link's closing bracket.
type linkTail struct {
	end   int
	style mdast.ReferenceStyle
	label string
	angle bool
}

// linkRange computes the full span of a link or image whose children are
// already mapped.
func (m *mapper) linkRange(node *mdast.Node, image bool, cursor int) (mdast.SourceRange, linkTail) {
	var open int
	if node.FirstChild != nil {
		open = node.FirstChild.Range.StartOffset - 1
		for open > 0 && m.content[open] != '[' {
			open--
		}
	} else {
		open = cursor
		for open < len(m.content)-1 && !(m.content[open] == '[' && m.content[open+1] == ']') {
			open++
		}
	}

	start := open
	if image && start > 0 && m.content[start-1] == '!' {
		start--
	}

	from := open + 1
	if node.LastChild != nil {
		from = node.LastChild.Range.EndOffset
	}
	closing := m.findUnescaped(from, ']')
	if closing < 0 {
		return m.span(start, from), linkTail{end: from}
	}

	tail := m.scanLinkTail(open, closing)
	return m.span(start, tail.end), tail
}

// scanLinkTail classifies the syntax following the label closed at closing.
func (m *mapper) scanLinkTail(open, closing int) linkTail {
	c := m.content
	p := closing + 1
	text := string(c[open+1 : closing])

	if p < len(c) && c[p] == '(' {
		if tail, ok := m.scanInlineTail(p); ok {
			return tail
		}
	}
	if p < len(c) && c[p] == '[' {
		if k := m.findUnescaped(p+1, ']'); k >= 0 {
			inner := c[p+1 : k]
			if len(inner) == 0 {
				return linkTail{end: k + 1, style: mdast.RefStyleCollapsed, label: text}
			}
			if m.defined(inner) {
				return linkTail{end: k + 1, style: mdast.RefStyleFull, label: string(inner)}
			}
		}
	}
	return linkTail{end: p, style: mdast.RefStyleShortcut, label: text}
}

// scanInlineTail parses "(destination "title")" starting at the open paren.
func (m *mapper) scanInlineTail(p int) (linkTail, bool) {
	c := m.content
	n := len(c)
	i := m.seekBlank(p + 1)
	angle := false

	if i < n && c[i] == '<' {
		j := i + 1
		for j < n && c[j] != '>' && c[j] != '\n' {
			if c[j] == '\\' {
				j++
			}
			j++
		}
		if j >= n || c[j] != '>' {
			return linkTail{}, false
		}
		angle = true
		i = j + 1
	} else {
		depth := 0
	dest:
		for i < n {
			switch ch := c[i]; {
			case ch == '\\' && i+1 < n:
				i++
			case ch == '(':
				depth++
			case ch == ')':
				if depth == 0 {
					break dest
				}
				depth--
			case isBlank(ch):
				break dest
			}
			i++
		}
	}

	i = m.seekBlank(i)
	if i < n && (c[i] == '"' || c[i] == '\'' || c[i] == '(') {
		closer := c[i]
		if closer == '(' {
			closer = ')'
		}
		j := i + 1
		for j < n && c[j] != closer {
			if c[j] == '\\' {
				j++
			}
			j++
		}
		if j >= n {
			return linkTail{}, false
		}
		i = m.seekBlank(j + 1)
	}

	if i < n && c[i] == ')' {
		return linkTail{end: i + 1, style: mdast.RefStyleInline, angle: angle}, true
	}
	return linkTail{}, false
}

// findUnescaped returns the index of the first unescaped ch at or after from, or -1.
func (m *mapper) findUnescaped(from int, ch byte) int {
	for i := from; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case ch:
			return i
		}
	}
	return -1
}

// markerStart walks back from an item's first content to its list marker.
func (m *mapper) markerStart(contentStart int, ordered bool) int {
	p := contentStart
	for p > 0 && isBlank(m.content[p-1]) {
		p--
	}
	switch {
	case ordered:
		if p > 0 && (m.content[p-1] == '.' || m.content[p-1] == ')') {
			p--
		}
		for p > 0 && isDigit(m.content[p-1]) {
			p--
		}
	case p > 0 && isBullet(m.content[p-1]):
		p--
	}
	return p
}

// markerEnd returns the offset just past the list marker starting at start.
func (m *mapper) markerEnd(start int) int {
	i := start
	for i < len(m.content) && isDigit(m.content[i]) {
		i++
	}
	if i < len(m.content) && (m.content[i] == '.' || m.content[i] == ')' || isBullet(m.content[i])) {
		i++
	}
	return i
}

// indentOf measures the columns between the start of a marker's line, after
// skipping the given number of blockquote markers, and the marker itself.
func (m *mapper) indentOf(marker, quotes int) int {
	line := m.file.Lines[m.file.LineIndex(marker)]
	i := line.StartOffset

	for q := 0; q < quotes; q++ {
		j := i
		for j < marker && isSpace(m.content[j]) {
			j++
		}
		if j >= marker || m.content[j] != '>' {
			break
		}
		i = j + 1
		if i < marker && m.content[i] == ' ' {
			i++
		}
	}

	col := 0
	for ; i < marker; i++ {
		if m.content[i] == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
	}
	return col
}

const tabWidth = 4

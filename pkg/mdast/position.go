package mdast

import "fmt"

// SourceRange is a half-open byte range [StartOffset, EndOffset) in the source content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Span builds a SourceRange.
func Span(start, end int) SourceRange {
	return SourceRange{StartOffset: start, EndOffset: end}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Covers returns true if other lies entirely within r.
func (r SourceRange) Covers(other SourceRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// Valid reports whether the range is well formed for content of the given length.
func (r SourceRange) Valid(length int) bool {
	return r.StartOffset >= 0 && r.StartOffset <= r.EndOffset && r.EndOffset <= length
}

func (r SourceRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.StartOffset, r.EndOffset)
}

// Position represents a 1-based line and column in a file.
// Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	Start Position
	End   Position
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.Start.Line == sp.End.Line
}

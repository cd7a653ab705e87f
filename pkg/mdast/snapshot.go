// Package mdast provides the Markdown tree used by the lint engine.
//
// A FileSnapshot pairs the raw content of one file with its line index and
// the parsed tree. Every node records the half-open byte range it spans so
// that findings can be mapped back to exact source locations.
package mdast

// FileSnapshot is an immutable view of a Markdown file at a specific time.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the tree root (NodeDocument).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a last line without a newline, this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot with its line index built.
// Root stays nil until a parser fills it in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Text returns the source bytes covered by r, or nil if r is out of bounds.
func (f *FileSnapshot) Text(r SourceRange) []byte {
	if !r.Valid(len(f.Content)) {
		return nil
	}
	return f.Content[r.StartOffset:r.EndOffset]
}

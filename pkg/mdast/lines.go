package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// Both LF and CRLF line endings are recognised.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 16)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The final line exists even when empty so that EOF offsets resolve.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets at or past the end of content map to the last line.
func (f *FileSnapshot) LineIndex(offset int) int {
	if len(f.Lines) == 0 || offset <= 0 {
		return 0
	}
	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(f.Content) || len(f.Lines) == 0 {
		return 0, 0
	}
	idx := f.LineIndex(offset)
	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Position is LineAt packaged as a Position.
func (f *FileSnapshot) Position(offset int) Position {
	line, col := f.LineAt(offset)
	return Position{Line: line, Column: col}
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}

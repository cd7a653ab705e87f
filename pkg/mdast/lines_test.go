package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []mdast.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "CRLF endings",
			content: "line1\r\nline2\r\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 12, EndOffset: 14},
				{StartOffset: 14, NewlineStart: 14, EndOffset: 14},
			},
		},
		{
			name:    "blank line between",
			content: "a\n\nb",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 2, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, mdast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("test.md", []byte("ab\ncd\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 1, wantCol: 1},
		{offset: 2, wantLine: 1, wantCol: 3},
		{offset: 3, wantLine: 2, wantCol: 1},
		{offset: 4, wantLine: 2, wantCol: 2},
		{offset: 6, wantLine: 3, wantCol: 1},
		{offset: 7, wantLine: 0, wantCol: 0},
		{offset: -1, wantLine: 0, wantCol: 0},
	}

	for _, tt := range tests {
		line, col := snap.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "line for offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "column for offset %d", tt.offset)
	}
}

func TestLineAtAndOffsetAreInverses(t *testing.T) {
	t.Parallel()

	content := []byte("first\r\nsecond\nthird")
	snap := mdast.NewFileSnapshot("", content)

	for offset := 0; offset <= len(content); offset++ {
		line, col := snap.LineAt(offset)
		got, ok := snap.Offset(line, col)
		assert.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, got)
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("", []byte("one\r\ntwo\n"))

	assert.Equal(t, "one", string(snap.LineContent(1)))
	assert.Equal(t, "two", string(snap.LineContent(2)))
	assert.Empty(t, snap.LineContent(3))
	assert.Nil(t, snap.LineContent(4))
	assert.Equal(t, 3, snap.LineCount())
}

func TestFileSnapshot_Text(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("", []byte("hello world"))

	assert.Equal(t, "world", string(snap.Text(mdast.Span(6, 11))))
	assert.Nil(t, snap.Text(mdast.Span(6, 12)))
	assert.Nil(t, snap.Text(mdast.Span(4, 3)))
}

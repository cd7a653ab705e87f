package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

func TestUlIndentRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		indent int
		want   []string
	}{
		{
			name:  "three and two space nesting",
			input: "- a\n   - b\n- c\n  - d\n",
			want:  []string{"- b"},
		},
		{
			name:  "consistent two spaces",
			input: "- a\n  - b\n    - c\n",
			want:  []string{},
		},
		{
			name:   "four space indent configured",
			input:  "- a\n    - b\n  - c\n",
			indent: 4,
			want:   []string{"- c"},
		},
		{
			name:   "two spaces rejected at four",
			input:  "* a\n  * b\n",
			indent: 4,
			want:   []string{"* b"},
		},
		{
			name:  "top level item indented",
			input: " - a\n - b\n",
			want:  []string{"- a", "- b"},
		},
		{
			name:  "nested under ordered list",
			input: "1. one\n   - sub\n",
			want:  []string{},
		},
		{
			name:  "deeper nesting under ordered list",
			input: "1. one\n   - sub\n     - deeper\n",
			want:  []string{},
		},
		{
			name:  "wide ordered marker",
			input: "10. ten\n    - sub\n",
			want:  []string{},
		},
		{
			name:  "ordered list nested in unordered",
			input: "- a\n  1. one\n     - sub\n",
			want:  []string{},
		},
		{
			name:  "inside blockquote",
			input: "> * a\n>    * b\n",
			want:  []string{"* b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []finding
			if tt.indent == 0 {
				got = check(t, NewUlIndentRule(), tt.input)
			} else {
				got = check(t, NewUlIndentRule(), tt.input, set("indent", tt.indent))
			}

			assert.Equal(t, tt.want, spansOf(tt.input, got))
			for _, f := range got {
				assert.Equal(t, "Unordered list indentation", f.Message)
			}
		})
	}
}

func TestUlIndentRule_RejectsNonPositiveIndent(t *testing.T) {
	t.Parallel()

	for _, indent := range []int{0, -3} {
		_, err := lint.BuildConfig(NewUlIndentRule(), set("indent", indent))
		require.Error(t, err)

		var cfgErr *lint.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "indent", cfgErr.Param)
	}
}

func TestUlStyleRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		style string
		want  []string
		msgs  []string
	}{
		{
			name:  "dash by default",
			input: "* a\n* b\n",
			want:  []string{"* a", "* b"},
			msgs: []string{
				"Unordered list item expected in Dash '-' style but is Asterisk '*'. Configuration: style=Dash '-'.",
				"Unordered list item expected in Dash '-' style but is Asterisk '*'. Configuration: style=Dash '-'.",
			},
		},
		{
			name:  "consistent follows first item",
			input: "- a\n- b\n\n* c\n",
			style: "consistent",
			want:  []string{"* c"},
			msgs:  []string{"Unordered list item expected in Dash '-' style but is Asterisk '*'. Configuration: style=Consistent."},
		},
		{
			name:  "plus",
			input: "+ a\n- b\n",
			style: "plus",
			want:  []string{"- b"},
			msgs:  []string{"Unordered list item expected in Plus '+' style but is Dash '-'. Configuration: style=Plus '+'."},
		},
		{
			name:  "nested items are checked",
			input: "- a\n  + b\n",
			want:  []string{"+ b"},
		},
		{
			name:  "asterisk matches",
			input: "* a\n  * b\n",
			style: "asterisk",
			want:  []string{},
		},
		{
			name:  "ordered lists ignored",
			input: "1. a\n2. b\n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []finding
			if tt.style == "" {
				got = check(t, NewUlStyleRule(), tt.input)
			} else {
				got = check(t, NewUlStyleRule(), tt.input, set("style", tt.style))
			}

			assert.Equal(t, tt.want, spansOf(tt.input, got))
			for i, msg := range tt.msgs {
				assert.Equal(t, msg, got[i].Message)
			}
		})
	}
}

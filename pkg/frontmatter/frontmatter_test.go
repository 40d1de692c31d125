package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Frontmatter
	}{
		{
			name: "plain values",
			input: `---
name: pdf-tools
description: Work with PDF files
---

# PDF tools
`,
			expected: &Frontmatter{Name: "pdf-tools", Description: "Work with PDF files"},
		},
		{
			name:     "double quoted values",
			input:    "---\nname: \"quoted\"\ndescription: \"Has: a colon\"\n---\n",
			expected: &Frontmatter{Name: "quoted", Description: "Has: a colon"},
		},
		{
			name:     "single quoted values",
			input:    "---\nname: 'single'\ndescription: 'It works'\n---\n",
			expected: &Frontmatter{Name: "single", Description: "It works"},
		},
		{
			name:     "whitespace around delimiters",
			input:    "---  \nname: spaced\ndescription: ok\n  ---\nbody",
			expected: &Frontmatter{Name: "spaced", Description: "ok"},
		},
		{
			name:     "crlf line endings",
			input:    "---\r\nname: windows\r\ndescription: CRLF file\r\n---\r\n",
			expected: &Frontmatter{Name: "windows", Description: "CRLF file"},
		},
		{
			name:     "extra keys ignored",
			input:    "---\nname: extra\nlicense: MIT\ndescription: Has more keys\n---\n",
			expected: &Frontmatter{Name: "extra", Description: "Has more keys"},
		},
		{
			name:     "first occurrence wins",
			input:    "---\nname: first\nname: second\ndescription: d\n---\n",
			expected: &Frontmatter{Name: "first", Description: "d"},
		},
		{
			name:     "mismatched quotes kept",
			input:    "---\nname: \"odd'\ndescription: d\n---\n",
			expected: &Frontmatter{Name: "\"odd'", Description: "d"},
		},
		{
			name:  "only name",
			input: "---\nname: lonely\n---\n",
		},
		{
			name:  "only description",
			input: "---\ndescription: nameless\n---\n",
		},
		{
			name:  "empty description after trim",
			input: "---\nname: x\ndescription: \"  \"\n---\n",
		},
		{
			name:  "empty block",
			input: "---\n\n---\nbody",
		},
		{
			name:  "no frontmatter",
			input: "# Title\n\nname: not-frontmatter\n",
		},
		{
			name:  "block not at start",
			input: "intro\n---\nname: late\ndescription: late\n---\n",
		},
		{
			name:  "unterminated block",
			input: "---\nname: open\ndescription: never closed\n",
		},
		{
			name:  "empty content",
			input: "",
		},
		{
			name:     "multi-line description unsupported",
			input:    "---\nname: folded\ndescription: >\n  spans lines\n---\n",
			expected: &Frontmatter{Name: "folded", Description: ">"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, result)
		})
	}
}

package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeDescription(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain text", expected: "plain text"},
		{input: "Has | pipe and ; semicolon", expected: `Has \| pipe and \; semicolon`},
		{input: "key: value", expected: `key\: value`},
		{input: "[list] {map}", expected: `\[list\] \{map\}`},
		{input: `back\slash`, expected: `back\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeDescription(tt.input))
		})
	}
}

func TestEscapeDescriptionLeavesNoBareDelimiters(t *testing.T) {
	inputs := []string{
		"|;:[]{}",
		"a|b;c:d[e]f{g}h",
		"||;;{{}}",
		"Use when: parsing {json} | [yaml]; fast",
	}

	for _, input := range inputs {
		escaped := EscapeDescription(input)
		for i, r := range escaped {
			if strings.ContainsRune("|;:[]{}", r) {
				assert.True(t, i > 0 && escaped[i-1] == '\\', "unescaped %q at %d in %q", r, i, escaped)
			}
		}
	}
}

func TestSerializeIndex(t *testing.T) {
	t.Run("scenario with escaping", func(t *testing.T) {
		result := SerializeIndex([]*Skill{
			{Name: "skill1", Description: "Has | pipe and ; semicolon", Source: SourceUser},
		}, "")
		assert.Contains(t, result, `skill1:Has \| pipe and \; semicolon`)
		assert.Equal(t, `[Skills Index]|user:{skill1:Has \| pipe and \; semicolon}|Regen: npx agents-md skills embed`, result)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "[Skills Index]|Regen: make skills", SerializeIndex(nil, "make skills"))
	})

	t.Run("groups and order", func(t *testing.T) {
		skills := []*Skill{
			{Name: "r1", Description: "Remote one", Source: SourceRemote, OriginLabel: "acme/skills"},
			{Name: "p1", Description: "Project one", Source: SourceProject},
			{Name: "w", Description: "Writer", Source: SourcePlugin, OriginLabel: "docs"},
			{Name: "u1", Description: "User one", Source: SourceUser, SiblingFiles: []string{"a.md", "scripts/b.sh"}},
			{Name: "d", Description: "Deploy", Source: SourcePlugin, OriginLabel: "aws"},
			{Name: "l", Description: "Lint", Source: SourcePlugin, OriginLabel: "docs"},
			{Name: "r2", Description: "Remote two", Source: SourceRemote, OriginLabel: "other/repo"},
		}

		result := SerializeIndex(skills, "agents-md skills embed")
		assert.Equal(t, "[Skills Index]"+
			"|plugin:docs:{w:Writer;l:Lint}"+
			"|plugin:aws:{d:Deploy}"+
			"|user:{u1:User one[a.md,scripts/b.sh]}"+
			"|project:{p1:Project one}"+
			"|skills-sh:acme/skills:{r1:Remote one}"+
			"|skills-sh:other/repo:{r2:Remote two}"+
			"|Regen: agents-md skills embed",
			result)
	})

	t.Run("empty user and project groups omitted", func(t *testing.T) {
		result := SerializeIndex([]*Skill{
			{Name: "x", Description: "X", Source: SourcePlugin, OriginLabel: "p"},
		}, "")
		assert.NotContains(t, result, "user:")
		assert.NotContains(t, result, "project:")
	})

	t.Run("empty origin keeps its segment", func(t *testing.T) {
		result := SerializeIndex([]*Skill{
			{Name: "x", Description: "X", Source: SourcePlugin},
			{Name: "y", Description: "Y", Source: SourceRemote},
		}, "")
		assert.Equal(t, "[Skills Index]|plugin::{x:X}|skills-sh::{y:Y}|Regen: npx agents-md skills embed", result)
	})

	t.Run("names and siblings are not escaped", func(t *testing.T) {
		result := SerializeIndex([]*Skill{
			{Name: "a:b", Description: "d", Source: SourceProject, SiblingFiles: []string{"x;y.md"}},
		}, "")
		assert.Contains(t, result, "project:{a:b:d[x;y.md]}")
	})
}

func TestSerializeIndexPanicsOnUnknownSource(t *testing.T) {
	assert.Panics(t, func() {
		SerializeIndex([]*Skill{{Name: "x", Description: "y", Source: Source("bogus")}}, "")
	})
}

package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	all := []*Skill{
		{Name: "pdf", Source: SourceUser},
		{Name: "xlsx", Source: SourceUser},
		{Name: "writer", Source: SourcePlugin, OriginLabel: "docs"},
		{Name: "linter", Source: SourcePlugin, OriginLabel: "docs"},
		{Name: "deploy", Source: SourceRemote, OriginLabel: "acme/tools"},
	}

	tests := []struct {
		name     string
		include  []string
		exclude  []string
		expected []string
	}{
		{name: "no patterns", expected: []string{"pdf", "xlsx", "writer", "linter", "deploy"}},
		{name: "include by name", include: []string{"pdf", "x*"}, expected: []string{"pdf", "xlsx"}},
		{name: "include by origin", include: []string{"docs/*"}, expected: []string{"writer", "linter"}},
		{name: "exclude", exclude: []string{"acme/tools/*", "pdf"}, expected: []string{"xlsx", "writer", "linter"}},
		{name: "include and exclude", include: []string{"docs/*"}, exclude: []string{"lint*"}, expected: []string{"writer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Filter(all, tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(result))
		})
	}
}

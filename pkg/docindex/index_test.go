package docindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize(t *testing.T) {
	t.Run("minimal header", func(t *testing.T) {
		result := Serialize(IndexOptions{RootPath: "./docs"}, nil)
		assert.Equal(t, "[Docs Index]|root: ./docs|If docs missing, run: npx agents-md embed", result)
	})

	t.Run("all header segments", func(t *testing.T) {
		result := Serialize(IndexOptions{
			RootPath:          "./.agents-md/nextjs-docs",
			ProviderLabel:     "Next.js",
			Instruction:       "IMPORTANT: read the docs",
			Description:       "App router docs",
			RegenerateCommand: "make docs",
		}, nil)
		assert.Equal(t,
			"[Next.js Docs Index]|root: ./.agents-md/nextjs-docs|IMPORTANT: read the docs|App router docs|If docs missing, run: make docs",
			result)
	})

	t.Run("output file in default command", func(t *testing.T) {
		result := Serialize(IndexOptions{RootPath: "docs", OutputFile: "CLAUDE.md"}, nil)
		assert.Equal(t, "[Docs Index]|root: docs|If docs missing, run: npx agents-md embed --output CLAUDE.md", result)
	})

	t.Run("directory groups in depth first order", func(t *testing.T) {
		sections := BuildTree([]string{
			"index.md",
			"01-intro/b.md",
			"01-intro/a.md",
			"02-api/overview.md",
			"02-api/functions/cookies.md",
			"02-api/functions/server/actions.md",
			"02-api/functions/server/deep/more.md",
		})
		result := Serialize(IndexOptions{RootPath: "docs"}, sections)
		assert.Equal(t,
			"[Docs Index]|root: docs|If docs missing, run: npx agents-md embed"+
				"|.:{index.md}"+
				"|01-intro:{a.md,b.md}"+
				"|02-api:{overview.md}"+
				"|02-api/functions:{cookies.md}"+
				"|02-api/functions/server:{actions.md}"+
				"|02-api/functions/server/deep:{more.md}",
			result)
	})

	t.Run("deterministic", func(t *testing.T) {
		files := []string{"b/x.md", "a/y.md", "a/z/w.md"}
		first := Serialize(IndexOptions{RootPath: "r"}, BuildTree(files))
		second := Serialize(IndexOptions{RootPath: "r"}, BuildTree([]string{"a/z/w.md", "b/x.md", "a/y.md"}))
		assert.Equal(t, first, second)
	})
}

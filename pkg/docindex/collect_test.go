package docindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+file), 0o644))
	}
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"index.mdx",
		"01-app/intro.md",
		"01-app/02-guides/auth.mdx",
		"01-app/image.png",
		".hidden.md",
		".git/config.md",
		"02-pages/_internal/notes.md",
	)

	t.Run("default patterns", func(t *testing.T) {
		files, err := CollectFiles(root, CollectOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"01-app/02-guides/auth.mdx",
			"01-app/intro.md",
			"02-pages/_internal/notes.md",
			"index.mdx",
		}, files)
	})

	t.Run("exclude patterns", func(t *testing.T) {
		files, err := CollectFiles(root, CollectOptions{Exclude: []string{"**/_internal/**"}})
		require.NoError(t, err)
		assert.NotContains(t, files, "02-pages/_internal/notes.md")
		assert.Len(t, files, 3)
	})

	t.Run("custom include", func(t *testing.T) {
		files, err := CollectFiles(root, CollectOptions{Include: []string{"**/*.mdx"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"01-app/02-guides/auth.mdx", "index.mdx"}, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := CollectFiles(root, CollectOptions{Include: []string{"[abc"}})
		assert.Error(t, err)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := CollectFiles(filepath.Join(root, "missing"), CollectOptions{})
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		_, err := CollectFiles(filepath.Join(root, "index.mdx"), CollectOptions{})
		assert.Error(t, err)
	})
}

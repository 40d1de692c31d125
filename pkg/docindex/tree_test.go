package docindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	t.Run("single section", func(t *testing.T) {
		sections := BuildTree([]string{"01-intro/b.md", "01-intro/a.md"})

		require.Len(t, sections, 1)
		assert.Equal(t, "01-intro", sections[0].Name)
		assert.Equal(t, []string{"01-intro/a.md", "01-intro/b.md"}, sections[0].Files)
		assert.Empty(t, sections[0].Subsections)
	})

	t.Run("root level files", func(t *testing.T) {
		sections := BuildTree([]string{"index.md", "guide/start.md", "about.md"})

		require.Len(t, sections, 2)
		assert.Equal(t, RootSection, sections[0].Name)
		assert.Equal(t, []string{"about.md", "index.md"}, sections[0].Files)
		assert.Equal(t, "guide", sections[1].Name)
	})

	t.Run("three levels", func(t *testing.T) {
		sections := BuildTree([]string{
			"app/routing/pages.md",
			"app/routing/layouts.md",
			"app/overview.md",
			"app/api/functions/cookies.md",
			"app/api/functions/headers.md",
			"app/api/components/image.md",
		})

		require.Len(t, sections, 1)
		app := sections[0]
		assert.Equal(t, "app", app.Name)
		assert.Equal(t, []string{"app/overview.md"}, app.Files)

		require.Len(t, app.Subsections, 2)
		assert.Equal(t, "api", app.Subsections[0].Name)
		assert.Empty(t, app.Subsections[0].Files)
		assert.Equal(t, "routing", app.Subsections[1].Name)
		assert.Equal(t, []string{"app/routing/layouts.md", "app/routing/pages.md"}, app.Subsections[1].Files)

		api := app.Subsections[0]
		require.Len(t, api.Subsections, 2)
		assert.Equal(t, "components", api.Subsections[0].Name)
		assert.Equal(t, "functions", api.Subsections[1].Name)
		assert.Equal(t, []string{"app/api/functions/cookies.md", "app/api/functions/headers.md"}, api.Subsections[1].Files)
	})

	t.Run("deep paths collapse into third level", func(t *testing.T) {
		sections := BuildTree([]string{
			"a/b/c/d/e/deep.md",
			"a/b/c/d/mid.md",
			"a/b/c/shallow.md",
		})

		require.Len(t, sections, 1)
		require.Len(t, sections[0].Subsections, 1)
		b := sections[0].Subsections[0]
		require.Len(t, b.Subsections, 1)
		c := b.Subsections[0]
		assert.Equal(t, "c", c.Name)
		assert.Empty(t, c.Subsections)
		assert.Equal(t, []string{"a/b/c/d/e/deep.md", "a/b/c/d/mid.md", "a/b/c/shallow.md"}, c.Files)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildTree(nil))
	})
}

func TestBuildTreeIsOrderIndependent(t *testing.T) {
	files := []string{
		"README.md",
		"01-app/01-getting-started/installation.mdx",
		"01-app/01-getting-started/project-structure.mdx",
		"01-app/02-guides/auth.mdx",
		"01-app/03-api-reference/04-functions/cookies.mdx",
		"01-app/03-api-reference/04-functions/headers.mdx",
		"01-app/03-api-reference/02-components/image.mdx",
		"01-app/03-api-reference/02-components/deep/nested/link.mdx",
		"02-pages/index.mdx",
		"03-architecture/accessibility.mdx",
		"index.mdx",
	}
	expected := BuildTree(files)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]string{}, files...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, BuildTree(shuffled))
	}
}

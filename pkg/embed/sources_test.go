package embed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jingkaihe/agents-md/pkg/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSkillSources(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()

	for _, dir := range []string{
		filepath.Join(home, ".claude", "plugins", "marketplaces", "official"),
		filepath.Join(home, ".claude", "plugins", "marketplaces", "community"),
		filepath.Join(project, ".agents-md", "skills", "acme", "tools"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	sources := DefaultSkillSources(home, project, DefaultCacheDir)
	assert.Equal(t, []skills.SourceConfig{
		{Type: skills.SourcePlugin, RootPath: filepath.Join(home, ".claude", "plugins", "marketplaces", "community"), Label: "community"},
		{Type: skills.SourcePlugin, RootPath: filepath.Join(home, ".claude", "plugins", "marketplaces", "official"), Label: "official"},
		{Type: skills.SourceUser, RootPath: filepath.Join(home, ".claude", "skills")},
		{Type: skills.SourceProject, RootPath: filepath.Join(project, ".claude", "skills")},
		{Type: skills.SourceProject, RootPath: filepath.Join(project, ".agents", "skills")},
		{Type: skills.SourceRemote, RootPath: filepath.Join(project, ".agents-md", "skills", "acme", "tools"), Label: "acme/tools"},
	}, sources)

	for _, source := range sources {
		assert.NoError(t, source.Validate())
	}
}

func TestDefaultSkillSourcesWithoutHome(t *testing.T) {
	project := t.TempDir()

	sources := DefaultSkillSources("", project, DefaultCacheDir)
	require.Len(t, sources, 2)
	for _, source := range sources {
		assert.Equal(t, skills.SourceProject, source.Type)
	}
}

func TestDefaultSkillSourcesEndToEnd(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()

	writeSkill(t, filepath.Join(home, ".claude", "plugins", "marketplaces", "official", "plugins", "docs-kit", "skills"), "changelog", "Write changelogs")
	writeSkill(t, filepath.Join(home, ".claude", "skills"), "notes", "Personal notes")
	writeSkill(t, filepath.Join(project, ".claude", "skills"), "deploy", "Deploy the app")
	writeSkill(t, filepath.Join(project, ".agents-md", "skills", "acme", "tools", "skills"), "lint", "Lint everything")

	cfg := NewSkillsConfig()
	cfg.ProjectDir = project
	cfg.Sources = DefaultSkillSources(home, project, DefaultCacheDir)

	found, err := ListSkills(context.Background(), cfg)
	require.NoError(t, err)

	var names []string
	for _, s := range found {
		names = append(names, s.QualifiedName())
	}
	assert.Equal(t, []string{"docs-kit/changelog", "notes", "deploy", "acme/tools/lint"}, names)
}

package embed

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jingkaihe/agents-md/pkg/skills"
)

// DefaultSkillSources lists the standard skill locations: plugins from each
// installed marketplace, user skills, project skills and cached remote
// repositories. An empty homeDir skips the per-user locations.
func DefaultSkillSources(homeDir, projectDir, cacheDir string) []skills.SourceConfig {
	var sources []skills.SourceConfig

	if homeDir != "" {
		marketplaces := filepath.Join(homeDir, ".claude", "plugins", "marketplaces")
		if entries, err := os.ReadDir(marketplaces); err == nil {
			var names []string
			for _, entry := range entries {
				if entry.IsDir() {
					names = append(names, entry.Name())
				}
			}
			sort.Strings(names)
			for _, name := range names {
				sources = append(sources, skills.SourceConfig{
					Type:     skills.SourcePlugin,
					RootPath: filepath.Join(marketplaces, name),
					Label:    name,
				})
			}
		}

		sources = append(sources, skills.SourceConfig{
			Type:     skills.SourceUser,
			RootPath: filepath.Join(homeDir, ".claude", "skills"),
		})
	}

	sources = append(sources,
		skills.SourceConfig{Type: skills.SourceProject, RootPath: filepath.Join(projectDir, ".claude", "skills")},
		skills.SourceConfig{Type: skills.SourceProject, RootPath: filepath.Join(projectDir, ".agents", "skills")},
	)

	return append(sources, skills.CachedRepoSources(SkillsCacheDir(projectDir, cacheDir))...)
}

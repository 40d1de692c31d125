package skills

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jingkaihe/agents-md/pkg/frontmatter"
	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/pkg/errors"
)

const (
	pluginsSubdir = "plugins"
	skillsSubdir  = "skills"
)

// RemoteSkillDirs are the repository subdirectories probed for skills, in
// precedence order
var RemoteSkillDirs = []string{
	"skills",
	"skills/.curated",
	"skills/.experimental",
	"skills/.system",
	".claude/skills",
	".agents/skills",
}

// DiscoverAll runs discovery for every configured source and concatenates
// the results in configuration order
func DiscoverAll(ctx context.Context, configs []SourceConfig) []*Skill {
	var all []*Skill
	for _, cfg := range configs {
		all = append(all, DiscoverSource(ctx, cfg)...)
	}
	return all
}

// DiscoverSource discovers skills from one source using the directory layout
// that source kind uses
func DiscoverSource(ctx context.Context, cfg SourceConfig) []*Skill {
	switch cfg.Type {
	case SourcePlugin:
		return DiscoverNested(ctx, cfg.RootPath, cfg.Label)
	case SourceUser, SourceProject:
		return Discover(ctx, cfg.RootPath, cfg.Type, cfg.Label)
	case SourceRemote:
		return DiscoverRemote(ctx, cfg.RootPath, cfg.Label)
	default:
		panic("skills: unhandled source " + string(cfg.Type))
	}
}

// Discover finds skills in a flat layout where every direct subdirectory of
// root holding a SKILL.md is a skill. label becomes the origin label for
// plugin and remote sources and is ignored otherwise.
func Discover(ctx context.Context, root string, source Source, label string) []*Skill {
	origin := ""
	if source.HasOrigin() {
		origin = label
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("dir", root).Debug("skipping skill directory")
		return nil
	}

	var skills []*Skill
	for _, entry := range entries {
		entryPath := filepath.Join(root, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skill, err := loadSkill(entryPath, nil)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("dir", entryPath).Debug("skipping skill candidate")
			continue
		}

		skill.Source = source
		skill.OriginLabel = origin
		skills = append(skills, skill)
	}

	return skills
}

// DiscoverNested finds skills in a plugin layout:
// <root>/plugins/<plugin>/skills/<skill>/SKILL.md. Each skill's origin label
// is the name of the plugin directory it was found in.
func DiscoverNested(ctx context.Context, root, label string) []*Skill {
	pluginsDir := filepath.Join(root, pluginsSubdir)
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("dir", pluginsDir).WithField("label", label).Debug("skipping plugin directory")
		return nil
	}

	var skills []*Skill
	for _, entry := range entries {
		pluginDir := filepath.Join(pluginsDir, entry.Name())
		if info, err := os.Stat(pluginDir); err != nil || !info.IsDir() {
			continue
		}

		skillsDir := filepath.Join(pluginDir, skillsSubdir)
		skills = append(skills, Discover(ctx, skillsDir, SourcePlugin, entry.Name())...)
	}

	return skills
}

// DiscoverRemote finds skills in a cloned repository by probing
// RemoteSkillDirs and finally a SKILL.md at the repository root. Skills are
// de-duplicated by name; the first one found wins. Probed directories that
// held skills are not listed as files of the root skill.
func DiscoverRemote(ctx context.Context, repoRoot, repoLabel string) []*Skill {
	seen := make(map[string]bool)
	skillDirs := make(map[string]bool)
	var skills []*Skill

	add := func(found ...*Skill) {
		for _, s := range found {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			skills = append(skills, s)
		}
	}

	for _, dir := range RemoteSkillDirs {
		found := Discover(ctx, filepath.Join(repoRoot, filepath.FromSlash(dir)), SourceRemote, repoLabel)
		if len(found) > 0 {
			skillDirs[dir] = true
		}
		add(found...)
	}

	if skill, err := loadSkill(repoRoot, skillDirs); err == nil {
		skill.Source = SourceRemote
		skill.OriginLabel = repoLabel
		add(skill)
	}

	return skills
}

// CachedRepoSources lists the remote sources cached under cacheRoot, which
// is laid out as <cacheRoot>/<owner>/<repo>
func CachedRepoSources(cacheRoot string) []SourceConfig {
	owners, err := os.ReadDir(cacheRoot)
	if err != nil {
		return nil
	}

	var configs []SourceConfig
	for _, owner := range owners {
		if !owner.IsDir() || strings.HasPrefix(owner.Name(), ".") {
			continue
		}
		repos, err := os.ReadDir(filepath.Join(cacheRoot, owner.Name()))
		if err != nil {
			continue
		}
		for _, repo := range repos {
			if !repo.IsDir() || strings.HasPrefix(repo.Name(), ".") {
				continue
			}
			configs = append(configs, SourceConfig{
				Type:     SourceRemote,
				RootPath: filepath.Join(cacheRoot, owner.Name(), repo.Name()),
				Label:    owner.Name() + "/" + repo.Name(),
			})
		}
	}

	return configs
}

// loadSkill loads the skill in dir from its SKILL.md file. Directories in
// skip, relative to dir, are left out of the sibling files.
func loadSkill(dir string, skip map[string]bool) (*Skill, error) {
	path := filepath.Join(dir, SkillFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	fm := frontmatter.Parse(string(content))
	if fm == nil {
		return nil, errors.New("missing name or description in frontmatter")
	}

	siblings, err := siblingFiles(dir, skip)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list skill files")
	}

	return &Skill{
		Name:         fm.Name,
		Description:  fm.Description,
		FilePath:     path,
		SiblingFiles: siblings,
	}, nil
}

// siblingFiles lists every file below dir except the skill file itself,
// anything hidden and the directories in skip, as sorted forward-slash paths
// relative to dir. A symlinked skill directory is walked through its target.
func siblingFiles(dir string, skip map[string]bool) ([]string, error) {
	root := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		root = resolved
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skip[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == SkillFileName {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

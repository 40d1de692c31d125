package skills

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Filter keeps skills matching at least one include pattern, or all skills
// when include is empty, and drops those matching any exclude pattern.
// Patterns are globs matched against both the skill name and its
// origin-qualified name, so "my-plugin/*" selects a whole plugin.
func Filter(skills []*Skill, include, exclude []string) ([]*Skill, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return skills, nil
	}

	includeGlobs, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	excludeGlobs, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}

	var filtered []*Skill
	for _, s := range skills {
		if len(includeGlobs) > 0 && !matchSkill(includeGlobs, s) {
			continue
		}
		if matchSkill(excludeGlobs, s) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid skill pattern %q", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchSkill(globs []glob.Glob, s *Skill) bool {
	for _, g := range globs {
		if g.Match(s.Name) || g.Match(s.QualifiedName()) {
			return true
		}
	}
	return false
}

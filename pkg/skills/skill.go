// Package skills discovers agent skills on disk and renders them as the
// compressed skills index embedded into AGENTS.md style files. Skills are
// directories containing a SKILL.md file whose frontmatter declares a name
// and a description.
package skills

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// SkillFileName is the file that marks a directory as a skill
const SkillFileName = "SKILL.md"

// Source identifies where a skill was found
type Source string

// Skill sources. Every switch over Source must handle all four.
const (
	SourcePlugin  Source = "plugin"
	SourceUser    Source = "user"
	SourceProject Source = "project"
	SourceRemote  Source = "remote"
)

// Sources lists every source in index order
var Sources = []Source{SourcePlugin, SourceUser, SourceProject, SourceRemote}

// ParseSource converts a configuration string into a Source
func ParseSource(s string) (Source, error) {
	for _, source := range Sources {
		if strings.EqualFold(s, string(source)) {
			return source, nil
		}
	}
	return "", errors.Errorf("unknown skill source %q (expected plugin, user, project or remote)", s)
}

// HasOrigin reports whether skills from this source carry an origin label
func (s Source) HasOrigin() bool {
	switch s {
	case SourcePlugin, SourceRemote:
		return true
	case SourceUser, SourceProject:
		return false
	default:
		panic("skills: unhandled source " + string(s))
	}
}

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name         string   // from frontmatter
	Description  string   // from frontmatter
	FilePath     string   // full path to SKILL.md
	SiblingFiles []string // other files in the skill directory, relative, sorted
	Source       Source
	OriginLabel  string // plugin name or owner/repo, empty for user and project skills
}

// Directory returns the skill directory
func (s *Skill) Directory() string {
	return filepath.Dir(s.FilePath)
}

// QualifiedName is the name prefixed with the origin label, if any
func (s *Skill) QualifiedName() string {
	if s.OriginLabel == "" {
		return s.Name
	}
	return s.OriginLabel + "/" + s.Name
}

// SourceConfig describes one location to search for skills
type SourceConfig struct {
	Type     Source `mapstructure:"type"`
	RootPath string `mapstructure:"root"`
	Label    string `mapstructure:"label"`
}

// NewSourceConfig creates a validated source configuration
func NewSourceConfig(source Source, rootPath, label string) (SourceConfig, error) {
	cfg := SourceConfig{Type: source, RootPath: rootPath, Label: label}
	if err := cfg.Validate(); err != nil {
		return SourceConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable for discovery
func (c SourceConfig) Validate() error {
	if _, err := ParseSource(string(c.Type)); err != nil {
		return err
	}
	if c.RootPath == "" {
		return errors.Errorf("root path is required for %s skill source", c.Type)
	}
	if c.Type == SourceRemote && !strings.Contains(c.Label, "/") {
		return errors.Errorf("remote skill source label %q must be 'owner/repo'", c.Label)
	}
	return nil
}

// DecodeSourceConfigs decodes the raw "skills.sources" configuration list.
// Relative roots are resolved against baseDir and source types are
// normalised.
func DecodeSourceConfigs(raw any, baseDir string) ([]SourceConfig, error) {
	if raw == nil {
		return nil, nil
	}

	var configs []SourceConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &configs,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create skill source decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode skill sources")
	}

	for i := range configs {
		source, err := ParseSource(string(configs[i].Type))
		if err != nil {
			return nil, err
		}
		configs[i].Type = source
		if configs[i].RootPath != "" && !filepath.IsAbs(configs[i].RootPath) {
			configs[i].RootPath = filepath.Join(baseDir, configs[i].RootPath)
		}
		if err := configs[i].Validate(); err != nil {
			return nil, err
		}
	}

	return configs, nil
}

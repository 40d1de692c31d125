package embed

import (
	"path/filepath"

	"github.com/jingkaihe/agents-md/pkg/docindex"
	"github.com/jingkaihe/agents-md/pkg/remote"
	"github.com/jingkaihe/agents-md/pkg/skills"
	"github.com/pkg/errors"
)

const (
	// DefaultOutputFile is the host file updated when none is configured
	DefaultOutputFile = "AGENTS.md"
	// DefaultCacheDir holds cloned docs and skill repositories, relative to
	// the project directory
	DefaultCacheDir = ".agents-md"

	skillsCacheSubdir = "skills"
	gitignoreFile     = ".gitignore"
)

// TargetConfig identifies the host file a command operates on
type TargetConfig struct {
	ProjectDir string // absolute project directory
	OutputFile string // host file, relative to ProjectDir unless absolute
	DryRun     bool   // compute and report the change without writing
}

// OutputPath returns the absolute path of the host file
func (c TargetConfig) OutputPath() string {
	if filepath.IsAbs(c.OutputFile) {
		return c.OutputFile
	}
	return filepath.Join(c.ProjectDir, c.OutputFile)
}

func (c TargetConfig) validate() error {
	if c.ProjectDir == "" {
		return errors.New("project directory is required")
	}
	if !filepath.IsAbs(c.ProjectDir) {
		return errors.Errorf("project directory %q must be absolute", c.ProjectDir)
	}
	if c.OutputFile == "" {
		return errors.New("output file is required")
	}
	return nil
}

// DocsConfig configures a docs embed run
type DocsConfig struct {
	TargetConfig
	CacheDir          string                       // relative to ProjectDir unless absolute
	Providers         []string                     // provider ids to embed
	CustomProviders   map[string]docindex.Provider // from configuration, shadows built-ins
	LocalDocs         *docindex.Provider           // ad-hoc local docs directory
	Version           string                       // resolves the provider ref template
	RegenerateCommand string
	Refresh           bool // re-clone docs that are already cached
	ManageGitignore   bool // add the cache directory to .gitignore
}

// NewDocsConfig creates a DocsConfig with default values
func NewDocsConfig() DocsConfig {
	return DocsConfig{
		TargetConfig:    TargetConfig{OutputFile: DefaultOutputFile},
		CacheDir:        DefaultCacheDir,
		ManageGitignore: true,
	}
}

// Validate checks the configuration and that every provider resolves
func (c DocsConfig) Validate() error {
	if err := c.TargetConfig.validate(); err != nil {
		return err
	}
	if c.CacheDir == "" {
		return errors.New("cache directory is required")
	}
	if len(c.Providers) == 0 && c.LocalDocs == nil {
		return errors.New("at least one docs provider or a local docs directory is required")
	}
	if _, err := c.providers(); err != nil {
		return err
	}
	return nil
}

// providers resolves the configured provider ids, followed by the local
// docs provider when set. Duplicate ids are rejected since each id owns
// exactly one block in the host file.
func (c DocsConfig) providers() ([]docindex.Provider, error) {
	seen := make(map[string]bool)
	var providers []docindex.Provider

	add := func(p docindex.Provider) error {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return errors.Errorf("docs provider %q given more than once", p.ID)
		}
		seen[p.ID] = true
		providers = append(providers, p)
		return nil
	}

	for _, id := range c.Providers {
		p, err := docindex.LookupProvider(id, c.CustomProviders)
		if err != nil {
			return nil, err
		}
		if err := add(p); err != nil {
			return nil, err
		}
	}
	if c.LocalDocs != nil {
		if !c.LocalDocs.Local() {
			return nil, errors.Errorf("local docs %q must not name a repository", c.LocalDocs.ID)
		}
		if err := add(*c.LocalDocs); err != nil {
			return nil, err
		}
	}

	return providers, nil
}

func (c DocsConfig) cachePath() string {
	return resolve(c.ProjectDir, c.CacheDir)
}

// SkillsConfig configures a skills embed or list run
type SkillsConfig struct {
	TargetConfig
	Sources           []skills.SourceConfig
	Include           []string // gobwas/glob patterns over skill names
	Exclude           []string
	RegenerateCommand string
}

// NewSkillsConfig creates a SkillsConfig with default values
func NewSkillsConfig() SkillsConfig {
	return SkillsConfig{
		TargetConfig: TargetConfig{OutputFile: DefaultOutputFile},
	}
}

// Validate checks the configuration
func (c SkillsConfig) Validate() error {
	if err := c.TargetConfig.validate(); err != nil {
		return err
	}
	for _, source := range c.Sources {
		if err := source.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RemoveConfig configures removal of generated blocks
type RemoveConfig struct {
	TargetConfig
	Providers []string // docs block ids to remove
	AllDocs   bool     // remove every docs block
	Skills    bool     // remove the skills block
}

// NewRemoveConfig creates a RemoveConfig with default values
func NewRemoveConfig() RemoveConfig {
	return RemoveConfig{
		TargetConfig: TargetConfig{OutputFile: DefaultOutputFile},
	}
}

// Validate checks that something was selected for removal
func (c RemoveConfig) Validate() error {
	if err := c.TargetConfig.validate(); err != nil {
		return err
	}
	if len(c.Providers) == 0 && !c.AllDocs && !c.Skills {
		return errors.New("nothing to remove: select docs providers, all docs or skills")
	}
	return nil
}

// InstallConfig configures fetching a remote skill repository into the cache
type InstallConfig struct {
	ProjectDir      string
	CacheDir        string
	Repo            string // owner/repo
	Ref             string
	ManageGitignore bool
}

// NewInstallConfig creates an InstallConfig with default values
func NewInstallConfig() InstallConfig {
	return InstallConfig{
		CacheDir:        DefaultCacheDir,
		ManageGitignore: true,
	}
}

// Validate checks the configuration
func (c InstallConfig) Validate() error {
	if c.ProjectDir == "" || !filepath.IsAbs(c.ProjectDir) {
		return errors.Errorf("project directory %q must be absolute", c.ProjectDir)
	}
	if c.CacheDir == "" {
		return errors.New("cache directory is required")
	}
	return remote.ValidateRepoName(c.Repo)
}

// SkillsCacheDir is where remote skill repositories are cached
func SkillsCacheDir(projectDir, cacheDir string) string {
	return filepath.Join(resolve(projectDir, cacheDir), skillsCacheSubdir)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

package docindex

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const versionPlaceholder = "{version}"

// Provider describes where a documentation set lives upstream and how its
// index block is labelled
type Provider struct {
	ID          string   `mapstructure:"id"`
	Label       string   `mapstructure:"label"`
	Repo        string   `mapstructure:"repo"`      // owner/repo on GitHub
	DocsPath    string   `mapstructure:"docs_path"` // directory inside the repo
	RefTemplate string   `mapstructure:"ref"`       // e.g. "v{version}", empty means default branch
	Instruction string   `mapstructure:"instruction"`
	Description string   `mapstructure:"description"`
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	NPMPackage  string   `mapstructure:"npm_package"`  // used to detect the version in package.json
	PyPIPackage string   `mapstructure:"pypi_package"` // used to detect the version in pyproject.toml
}

var builtinProviders = map[string]Provider{
	"nextjs": {
		ID:          "nextjs",
		Label:       "Next.js",
		Repo:        "vercel/next.js",
		DocsPath:    "docs",
		RefTemplate: "v" + versionPlaceholder,
		Instruction: "IMPORTANT: Prefer retrieval-led reasoning over pre-training-led reasoning for any Next.js tasks.",
		NPMPackage:  "next",
	},
}

// Validate checks the provider can be used to build a marker-safe index
func (p Provider) Validate() error {
	if p.ID == "" {
		return errors.New("provider id is required")
	}
	if strings.ContainsAny(p.ID, " \t\n:>") {
		return errors.Errorf("provider id %q must not contain whitespace, ':' or '>'", p.ID)
	}
	if p.Repo != "" {
		parts := strings.SplitN(p.Repo, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return errors.Errorf("invalid repository format %q for provider %s: expected 'owner/repo'", p.Repo, p.ID)
		}
	}
	return CollectOptions{Include: p.Include, Exclude: p.Exclude}.Validate()
}

// Ref resolves the git ref for a documentation version. An empty version
// or an empty template yields an empty ref, meaning the default branch.
func (p Provider) Ref(version string) string {
	if version == "" || p.RefTemplate == "" {
		return ""
	}
	return strings.ReplaceAll(p.RefTemplate, versionPlaceholder, version)
}

// Local reports whether the docs live inside the project rather than in an
// upstream repository
func (p Provider) Local() bool {
	return p.Repo == ""
}

// DocsDir is the local directory holding the provider's docs under cacheDir
func (p Provider) DocsDir(cacheDir string) string {
	return filepath.Join(cacheDir, p.ID+"-docs")
}

// CollectOptions returns the file selection configured for the provider
func (p Provider) CollectOptions() CollectOptions {
	return CollectOptions{Include: p.Include, Exclude: p.Exclude}
}

// IndexOptions returns the header options for an index rooted at rootPath
func (p Provider) IndexOptions(rootPath string) IndexOptions {
	return IndexOptions{
		RootPath:      rootPath,
		ProviderLabel: p.Label,
		Instruction:   p.Instruction,
		Description:   p.Description,
	}
}

// LookupProvider finds a provider by id. Custom providers shadow built-ins.
func LookupProvider(id string, custom map[string]Provider) (Provider, error) {
	if p, ok := custom[id]; ok {
		return p, nil
	}
	if p, ok := builtinProviders[id]; ok {
		return p, nil
	}
	return Provider{}, errors.Errorf("unknown docs provider %q (available: %s)", id, strings.Join(ProviderIDs(custom), ", "))
}

// ProviderIDs lists built-in and custom provider ids, sorted
func ProviderIDs(custom map[string]Provider) []string {
	seen := make(map[string]bool)
	var ids []string
	for id := range builtinProviders {
		seen[id] = true
		ids = append(ids, id)
	}
	for id := range custom {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// DecodeProviders decodes the raw "providers" configuration map, keyed by
// provider id, into validated providers
func DecodeProviders(raw map[string]any) (map[string]Provider, error) {
	providers := make(map[string]Provider, len(raw))

	for id, value := range raw {
		var p Provider
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create provider decoder")
		}
		if err := decoder.Decode(value); err != nil {
			return nil, errors.Wrapf(err, "failed to decode provider %s", id)
		}
		if p.ID == "" {
			p.ID = id
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		providers[id] = p
	}

	return providers, nil
}

// Package detect reads the version of a dependency from a project's
// package manifests so docs can be pinned to the version actually in use.
package detect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	packageJSON   = "package.json"
	pyprojectTOML = "pyproject.toml"
)

// Package names a dependency in the supported ecosystems. Either name may
// be empty.
type Package struct {
	NPM  string
	PyPI string
}

// versionPattern picks the first dotted version number out of a
// requirement such as "^15.1.0", ">=5.0,<6" or "~=2.31"
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*(?:-[0-9A-Za-z.]+)?`)

// Version returns the version of pkg required by the manifests in
// projectDir. package.json is consulted before pyproject.toml. An empty
// string with a nil error means the dependency was not found or its
// requirement names no concrete version.
func Version(projectDir string, pkg Package) (string, error) {
	if pkg.NPM != "" {
		v, err := npmVersion(filepath.Join(projectDir, packageJSON), pkg.NPM)
		if err != nil || v != "" {
			return v, err
		}
	}
	if pkg.PyPI != "" {
		return pypiVersion(filepath.Join(projectDir, pyprojectTOML), pkg.PyPI)
	}
	return "", nil
}

// ExtractVersion returns the first concrete version in a requirement
// string, or "" for requirements like "latest", "*" or "workspace:*"
func ExtractVersion(requirement string) string {
	return versionPattern.FindString(requirement)
}

type npmManifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

func npmVersion(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	var manifest npmManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", path)
	}

	for _, deps := range []map[string]string{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.PeerDependencies,
		manifest.OptionalDependencies,
	} {
		if requirement, ok := deps[name]; ok {
			return ExtractVersion(requirement), nil
		}
	}
	return "", nil
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func pypiVersion(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	var manifest pyproject
	if _, err := toml.Decode(string(data), &manifest); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", path)
	}

	want := normalizePyPIName(name)
	for _, requirement := range manifest.Project.Dependencies {
		depName, specifier := splitRequirement(requirement)
		if normalizePyPIName(depName) == want {
			return ExtractVersion(specifier), nil
		}
	}

	for depName, value := range manifest.Tool.Poetry.Dependencies {
		if normalizePyPIName(depName) != want {
			continue
		}
		switch v := value.(type) {
		case string:
			return ExtractVersion(v), nil
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				return ExtractVersion(s), nil
			}
		}
		return "", nil
	}

	return "", nil
}

// splitRequirement splits a PEP 508 requirement into its distribution name
// and the version specifier that follows it
func splitRequirement(requirement string) (name, specifier string) {
	requirement = strings.TrimSpace(requirement)
	end := strings.IndexFunc(requirement, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	if end == -1 {
		return requirement, ""
	}
	specifier = requirement[end:]
	if idx := strings.Index(specifier, ";"); idx >= 0 {
		specifier = specifier[:idx]
	}
	if strings.HasPrefix(specifier, "[") {
		if idx := strings.Index(specifier, "]"); idx >= 0 {
			specifier = specifier[idx+1:]
		}
	}
	return requirement[:end], specifier
}

// normalizePyPIName applies PEP 503 name normalisation
func normalizePyPIName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}

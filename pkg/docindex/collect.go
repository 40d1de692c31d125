package docindex

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// DefaultIncludePatterns matches markdown and MDX documentation files
var DefaultIncludePatterns = []string{"**/*.{md,mdx}"}

// CollectOptions selects which files under a docs root are indexed
type CollectOptions struct {
	Include []string // doublestar patterns, defaults to DefaultIncludePatterns
	Exclude []string // doublestar patterns matched against the relative path
}

// Validate checks that every pattern is well formed
func (o CollectOptions) Validate() error {
	for _, pattern := range append(append([]string{}, o.Include...), o.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// CollectFiles walks root and returns the relative posix paths of all
// matching documentation files, sorted. Dot files and dot directories are
// skipped. Unreadable subdirectories are skipped; a missing or unreadable
// root is an error.
func CollectFiles(root string, opts CollectOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat docs directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("docs path %s is not a directory", root)
	}

	include := opts.Include
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}

	var files []string
	err = fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == "." {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if matchAny(include, path) && !matchAny(opts.Exclude, path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk docs directory %s", root)
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

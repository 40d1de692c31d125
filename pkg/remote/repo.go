package remote

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ValidateRepoName validates a GitHub repository name of the form
// "owner/repo"
func ValidateRepoName(repo string) error {
	if repo == "" {
		return errors.New("repository name cannot be empty")
	}
	parts := strings.Split(repo, "/")
	if len(parts) != 2 {
		return errors.Errorf("invalid repository format %q: expected 'owner/repo'", repo)
	}
	for _, part := range parts {
		if part == "" {
			return errors.Errorf("invalid repository format %q: owner and repo cannot be empty", repo)
		}
		if part == "." || part == ".." || strings.ContainsAny(part, `\ `) {
			return errors.Errorf("invalid repository format %q", repo)
		}
	}
	return nil
}

// ParseRepoRef splits "owner/repo@ref" into its repository and ref parts.
// The ref is empty when none is given.
func ParseRepoRef(arg string) (repo, ref string, err error) {
	repo = arg
	if idx := strings.LastIndex(arg, "@"); idx >= 0 {
		repo, ref = arg[:idx], arg[idx+1:]
		if ref == "" {
			return "", "", errors.Errorf("invalid reference in %q: ref cannot be empty", arg)
		}
	}
	if err := ValidateRepoName(repo); err != nil {
		return "", "", err
	}
	return repo, ref, nil
}

// RepoCacheDir returns the directory a repository is cloned into beneath
// cacheRoot
func RepoCacheDir(cacheRoot, repo string) string {
	owner, name, _ := strings.Cut(repo, "/")
	return filepath.Join(cacheRoot, owner, name)
}

// GitHubURL returns the HTTPS clone URL for repo
func GitHubURL(repo string) string {
	return "https://github.com/" + repo + ".git"
}

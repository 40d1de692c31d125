package remote

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/osutil"
	"github.com/pkg/errors"
)

// Cloner fetches part of a git repository into a local directory
type Cloner interface {
	CloneSparse(ctx context.Context, repo, subPath, ref, dest string) error
}

// GitCloner clones repositories with the git CLI. URLFunc maps a repository
// name to its clone URL and defaults to GitHubURL.
type GitCloner struct {
	URLFunc func(repo string) string
}

var _ Cloner = (*GitCloner)(nil)

// NewGitCloner creates a Cloner backed by the git CLI
func NewGitCloner() *GitCloner {
	return &GitCloner{URLFunc: GitHubURL}
}

// ValidateGit checks that the git CLI is available
func ValidateGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return errors.New("git is not installed or not in PATH")
	}
	return nil
}

// CloneSparse performs a shallow, blob-less clone of repo into dest and
// checks out only subPath. An empty subPath checks out the whole tree. An
// existing dest is replaced only after the clone succeeds.
func (g *GitCloner) CloneSparse(ctx context.Context, repo, subPath, ref, dest string) error {
	if err := ValidateGit(); err != nil {
		return err
	}

	urlFunc := g.URLFunc
	if urlFunc == nil {
		urlFunc = GitHubURL
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrap(err, "failed to create clone parent directory")
	}
	tmpDir, err := os.MkdirTemp(filepath.Dir(dest), ".clone-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tmpDir)

	args := []string{"clone", "--depth", "1", "--filter=blob:none"}
	if subPath != "" {
		args = append(args, "--sparse")
	}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, urlFunc(repo), tmpDir)

	log := logger.G(ctx).WithField("repo", repo).WithField("ref", ref)
	log.Debug("cloning repository")
	if err := runGit(ctx, "", args...); err != nil {
		return errors.Wrapf(err, "failed to clone %s", repo)
	}

	if subPath != "" {
		log.WithField("path", subPath).Debug("configuring sparse checkout")
		if err := runGit(ctx, tmpDir, "sparse-checkout", "set", subPath); err != nil {
			return errors.Wrapf(err, "failed to check out %s from %s", subPath, repo)
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, "failed to remove existing %s", dest)
	}
	if err := os.Rename(tmpDir, dest); err != nil {
		return errors.Wrapf(err, "failed to move clone into %s", dest)
	}
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	osutil.KillGroupOnCancel(cmd)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "git %s: %s", args[0], strings.TrimSpace(string(output)))
	}
	return nil
}

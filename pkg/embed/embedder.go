// Package embed orchestrates index generation: it gathers docs and skills,
// renders their index blocks and merges them into the host markdown file.
package embed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/agents-md/pkg/hostfile"
	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/remote"
)

// Block describes one index block written to or removed from the host file
type Block struct {
	ID      string `json:"id"`
	Entries int    `json:"entries"`
}

// Result reports the outcome of an embed or remove run. Failures are
// reported through Success and Error rather than a Go error so callers can
// render them uniformly.
type Result struct {
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	OutputFile string           `json:"output_file"`
	DryRun     bool             `json:"dry_run"`
	Blocks     []Block          `json:"blocks,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
	Change     *hostfile.Change `json:"-"`
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) finish(err error) *Result {
	if err != nil {
		r.Success = false
		r.Error = err.Error()
		return r
	}
	r.Success = true
	return r
}

// Embedder runs embed, remove and install operations
type Embedder struct {
	cloner remote.Cloner
}

// Option configures an Embedder
type Option func(*Embedder)

// WithCloner sets the cloner used to fetch docs and skill repositories
func WithCloner(cloner remote.Cloner) Option {
	return func(e *Embedder) {
		e.cloner = cloner
	}
}

// New creates an Embedder. Repositories are fetched with the git CLI unless
// another cloner is given.
func New(opts ...Option) *Embedder {
	e := &Embedder{
		cloner: remote.NewGitCloner(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// apply runs transform against the host file, or only previews it on a dry
// run
func apply(ctx context.Context, target TargetConfig, transform hostfile.TransformFunc) (*hostfile.Change, error) {
	path := target.OutputPath()
	if target.DryRun {
		logger.G(ctx).WithField("file", path).Debug("previewing host file change")
		return hostfile.Preview(path, transform)
	}
	logger.G(ctx).WithField("file", path).Debug("updating host file")
	return hostfile.Update(path, transform)
}

// ensureIgnored adds dir to the project's .gitignore when it lives inside
// the project
func ensureIgnored(ctx context.Context, projectDir, dir string) error {
	rel, ok := projectRelative(projectDir, dir)
	if !ok || rel == "." {
		return nil
	}

	change, err := hostfile.EnsureGitignore(filepath.Join(projectDir, gitignoreFile), rel+"/")
	if err != nil {
		return err
	}
	if change.Written {
		logger.G(ctx).WithField("entry", rel+"/").Info("added cache directory to .gitignore")
	}
	return nil
}

// displayPath renders path relative to the project as "./<rel>", falling
// back to the slash-separated absolute path for paths outside the project
func displayPath(projectDir, path string) string {
	rel, ok := projectRelative(projectDir, path)
	if !ok {
		return filepath.ToSlash(path)
	}
	if rel == "." {
		return "."
	}
	return "./" + rel
}

func projectRelative(projectDir, path string) (string, bool) {
	rel, err := filepath.Rel(projectDir, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

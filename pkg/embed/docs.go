package embed

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/agents-md/pkg/detect"
	"github.com/jingkaihe/agents-md/pkg/docindex"
	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/marker"
	"github.com/jingkaihe/agents-md/pkg/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

type docsBlock struct {
	id    string
	body  string
	files int
}

// EmbedDocs renders a docs index for every configured provider and injects
// each into the host file under its own markers. Nothing is written unless
// every provider succeeds.
func (e *Embedder) EmbedDocs(ctx context.Context, cfg DocsConfig) *Result {
	result := &Result{OutputFile: cfg.OutputPath(), DryRun: cfg.DryRun}

	err := telemetry.WithSpan(ctx, "embed.docs", func(ctx context.Context) error {
		return e.embedDocs(ctx, cfg, result)
	},
		attribute.StringSlice("providers", cfg.Providers),
		attribute.Bool("dry_run", cfg.DryRun),
	)

	return result.finish(err)
}

func (e *Embedder) embedDocs(ctx context.Context, cfg DocsConfig, result *Result) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	providers, err := cfg.providers()
	if err != nil {
		return err
	}

	var merr *multierror.Error
	var blocks []docsBlock
	usesCache := false
	for _, p := range providers {
		block, err := e.buildDocsBlock(ctx, cfg, p, result)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "provider %s", p.ID))
			continue
		}
		blocks = append(blocks, block)
		usesCache = usesCache || !p.Local()
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}

	change, err := apply(ctx, cfg.TargetConfig, func(content string) (string, error) {
		for _, b := range blocks {
			content = marker.Inject(content, b.body, marker.DocsMarkers(b.id))
		}
		return content, nil
	})
	if err != nil {
		return err
	}
	result.Change = change
	for _, b := range blocks {
		result.Blocks = append(result.Blocks, Block{ID: b.id, Entries: b.files})
	}

	if usesCache && cfg.ManageGitignore && !cfg.DryRun {
		if err := ensureIgnored(ctx, cfg.ProjectDir, cfg.cachePath()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Embedder) buildDocsBlock(ctx context.Context, cfg DocsConfig, p docindex.Provider, result *Result) (docsBlock, error) {
	docsRoot, err := e.docsRoot(ctx, cfg, p, result)
	if err != nil {
		return docsBlock{}, err
	}

	files, err := docindex.CollectFiles(docsRoot, p.CollectOptions())
	if err != nil {
		return docsBlock{}, err
	}
	if len(files) == 0 {
		return docsBlock{}, errors.Errorf("no documentation files found in %s", docsRoot)
	}

	opts := p.IndexOptions(displayPath(cfg.ProjectDir, docsRoot))
	opts.RegenerateCommand = cfg.RegenerateCommand
	if cfg.OutputFile != DefaultOutputFile {
		opts.OutputFile = cfg.OutputFile
	}

	logger.G(ctx).WithField("provider", p.ID).WithField("files", len(files)).Debug("built docs index")
	return docsBlock{
		id:    p.ID,
		body:  docindex.Serialize(opts, docindex.BuildTree(files)),
		files: len(files),
	}, nil
}

// docsRoot returns the directory holding the provider's docs, cloning the
// provider repository into the cache first when needed
func (e *Embedder) docsRoot(ctx context.Context, cfg DocsConfig, p docindex.Provider, result *Result) (string, error) {
	if p.Local() {
		return resolve(cfg.ProjectDir, p.DocsPath), nil
	}

	repoDir := p.DocsDir(cfg.cachePath())
	docsRoot := filepath.Join(repoDir, filepath.FromSlash(p.DocsPath))

	if !cfg.Refresh {
		if info, err := os.Stat(docsRoot); err == nil && info.IsDir() {
			logger.G(ctx).WithField("provider", p.ID).WithField("dir", docsRoot).Debug("using cached docs")
			return docsRoot, nil
		}
	}

	ref := p.Ref(docsVersion(ctx, cfg, p, result))
	logger.G(ctx).WithField("provider", p.ID).WithField("repo", p.Repo).WithField("ref", ref).Info("downloading docs")
	if err := e.cloner.CloneSparse(ctx, p.Repo, p.DocsPath, ref, repoDir); err != nil {
		return "", err
	}
	return docsRoot, nil
}

// docsVersion returns the configured version, falling back to the version
// the project's manifests require for the provider's package. A failed
// detection is reported as a warning on result and the default branch is
// used.
func docsVersion(ctx context.Context, cfg DocsConfig, p docindex.Provider, result *Result) string {
	if cfg.Version != "" {
		return cfg.Version
	}

	version, err := detect.Version(cfg.ProjectDir, detect.Package{NPM: p.NPMPackage, PyPI: p.PyPIPackage})
	if err != nil {
		logger.G(ctx).WithError(err).WithField("provider", p.ID).Debug("version detection failed")
		result.warn("could not detect %s version, using the default branch: %v", p.ID, err)
		return ""
	}
	if version != "" {
		logger.G(ctx).WithField("provider", p.ID).WithField("version", version).Info("detected docs version")
	}
	return version
}

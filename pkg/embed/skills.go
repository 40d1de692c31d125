package embed

import (
	"context"
	"os"

	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/marker"
	"github.com/jingkaihe/agents-md/pkg/remote"
	"github.com/jingkaihe/agents-md/pkg/skills"
	"github.com/jingkaihe/agents-md/pkg/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const skillsBlockID = "skills"

// ListSkills discovers skills from every configured source and applies the
// include and exclude filters
func ListSkills(ctx context.Context, cfg SkillsConfig) ([]*skills.Skill, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	found := skills.DiscoverAll(ctx, cfg.Sources)
	return skills.Filter(found, cfg.Include, cfg.Exclude)
}

// EmbedSkills renders the skills index and injects it into the host file.
// Finding no skills at all is a failure.
func (e *Embedder) EmbedSkills(ctx context.Context, cfg SkillsConfig) *Result {
	result := &Result{OutputFile: cfg.OutputPath(), DryRun: cfg.DryRun}

	err := telemetry.WithSpan(ctx, "embed.skills", func(ctx context.Context) error {
		found, err := ListSkills(ctx, cfg)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return errors.New("no skills found")
		}
		telemetry.SetAttributes(ctx, attribute.Int("skills.count", len(found)))

		regen := cfg.RegenerateCommand
		if regen == "" && cfg.OutputFile != DefaultOutputFile {
			regen = skills.DefaultRegenerateCommand + " --output " + cfg.OutputFile
		}
		body := skills.SerializeIndex(found, regen)

		change, err := apply(ctx, cfg.TargetConfig, func(content string) (string, error) {
			return marker.Inject(content, body, marker.SkillsMarkers()), nil
		})
		if err != nil {
			return err
		}
		result.Change = change
		result.Blocks = []Block{{ID: skillsBlockID, Entries: len(found)}}
		return nil
	}, attribute.Bool("dry_run", cfg.DryRun))

	return result.finish(err)
}

// InstallResult describes a skill repository fetched into the cache
type InstallResult struct {
	Repo   string   `json:"repo"`
	Dir    string   `json:"dir"`
	Skills []string `json:"skills"`
}

// InstallSkills clones a remote skill repository into the skills cache. The
// repository must contain at least one skill; otherwise the clone is
// discarded.
func (e *Embedder) InstallSkills(ctx context.Context, cfg InstallConfig) (*InstallResult, error) {
	var result *InstallResult

	err := telemetry.WithSpan(ctx, "skills.install", func(ctx context.Context) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		dest := remote.RepoCacheDir(SkillsCacheDir(cfg.ProjectDir, cfg.CacheDir), cfg.Repo)
		logger.G(ctx).WithField("repo", cfg.Repo).WithField("dir", dest).Info("fetching skills")
		if err := e.cloner.CloneSparse(ctx, cfg.Repo, "", cfg.Ref, dest); err != nil {
			return err
		}

		found := skills.DiscoverRemote(ctx, dest, cfg.Repo)
		if len(found) == 0 {
			if err := os.RemoveAll(dest); err != nil {
				logger.G(ctx).WithError(err).WithField("dir", dest).Warn("failed to clean up repository without skills")
			}
			return errors.Errorf("no skills found in repository %s", cfg.Repo)
		}

		result = &InstallResult{Repo: cfg.Repo, Dir: dest}
		for _, s := range found {
			result.Skills = append(result.Skills, s.Name)
		}

		if cfg.ManageGitignore {
			return ensureIgnored(ctx, cfg.ProjectDir, resolve(cfg.ProjectDir, cfg.CacheDir))
		}
		return nil
	}, attribute.String("repo", cfg.Repo))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UninstallSkills deletes a cached skill repository
func UninstallSkills(cfg InstallConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := remote.RepoCacheDir(SkillsCacheDir(cfg.ProjectDir, cfg.CacheDir), cfg.Repo)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return errors.Errorf("skill repository %s not found", cfg.Repo)
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "failed to remove skill repository %s", cfg.Repo)
	}
	return nil
}

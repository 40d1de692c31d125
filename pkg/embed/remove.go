package embed

import (
	"context"

	"github.com/jingkaihe/agents-md/pkg/marker"
	"github.com/jingkaihe/agents-md/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Remove deletes the selected index blocks from the host file. Blocks that
// are absent are ignored, and a missing host file is not an error.
func (e *Embedder) Remove(ctx context.Context, cfg RemoveConfig) *Result {
	result := &Result{OutputFile: cfg.OutputPath(), DryRun: cfg.DryRun}

	err := telemetry.WithSpan(ctx, "embed.remove", func(ctx context.Context) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		var removed []Block
		change, err := apply(ctx, cfg.TargetConfig, func(content string) (string, error) {
			removed = nil
			if cfg.AllDocs {
				for _, id := range marker.IDs(content) {
					removed = append(removed, Block{ID: id})
				}
				content = marker.RemoveAllDocs(content)
			} else {
				for _, id := range cfg.Providers {
					m := marker.DocsMarkers(id)
					if marker.HasBlock(content, m) {
						removed = append(removed, Block{ID: id})
						content = marker.Remove(content, m)
					}
				}
			}

			if cfg.Skills && marker.HasBlock(content, marker.SkillsMarkers()) {
				removed = append(removed, Block{ID: skillsBlockID})
				content = marker.Remove(content, marker.SkillsMarkers())
			}
			return content, nil
		})
		if err != nil {
			return err
		}

		result.Change = change
		result.Blocks = removed
		return nil
	},
		attribute.StringSlice("providers", cfg.Providers),
		attribute.Bool("all_docs", cfg.AllDocs),
		attribute.Bool("skills", cfg.Skills),
	)

	return result.finish(err)
}

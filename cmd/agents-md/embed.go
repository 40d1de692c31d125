package main

import (
	"github.com/jingkaihe/agents-md/pkg/docindex"
	"github.com/jingkaihe/agents-md/pkg/embed"
	"github.com/jingkaihe/agents-md/pkg/presenter"
	"github.com/spf13/cobra"
)

type EmbedConfig struct {
	Providers         []string
	Version           string
	DocsDir           string
	ID                string
	Label             string
	Refresh           bool
	DryRun            bool
	NoGitignore       bool
	RegenerateCommand string
}

func NewEmbedConfig() *EmbedConfig {
	return &EmbedConfig{
		ID: "docs",
	}
}

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed a documentation index into AGENTS.md",
	Long: `Build a compact index of documentation files and embed it into the output file.

Docs come from a provider, downloaded into the cache directory with a sparse git
clone, or from a local directory. Each provider owns one block delimited by
<!-- AGENTS-MD-EMBED-START:<id> --> and <!-- AGENTS-MD-EMBED-END:<id> -->, which
is replaced in place on every run.

Custom providers are declared in the config file:

  providers:
    react:
      label: React
      repo: reactjs/react.dev
      docs_path: src/content
      ref: v{version}
      npm_package: react

When --version is not given, the version is read from the provider's package
in package.json or pyproject.toml, falling back to the default branch.

Examples:
  agents-md embed --provider nextjs --version 15.1.0
  agents-md embed --docs-dir ./docs --id handbook --label Handbook
  agents-md embed --provider nextjs -o CLAUDE.md --dry-run`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := getEmbedConfigFromFlags(cmd)

		target, err := targetConfig(config.DryRun)
		if err != nil {
			return err
		}
		custom, err := customProviders()
		if err != nil {
			return err
		}

		docsConfig := embed.NewDocsConfig()
		docsConfig.TargetConfig = target
		docsConfig.CacheDir = cacheDir()
		docsConfig.Providers = config.Providers
		docsConfig.CustomProviders = custom
		docsConfig.Version = config.Version
		docsConfig.Refresh = config.Refresh
		docsConfig.ManageGitignore = !config.NoGitignore
		docsConfig.RegenerateCommand = config.RegenerateCommand
		if config.DocsDir != "" {
			docsConfig.LocalDocs = &docindex.Provider{
				ID:       config.ID,
				Label:    config.Label,
				DocsPath: config.DocsDir,
			}
		}

		result := embed.New().EmbedDocs(cmd.Context(), docsConfig)
		return reportResult(presenter.Default(), result, "Embedded")
	},
}

func init() {
	defaults := NewEmbedConfig()
	embedCmd.Flags().StringSliceP("provider", "p", defaults.Providers, "Docs provider to embed (repeatable); built-in: nextjs")
	embedCmd.Flags().String("version", defaults.Version, "Docs version used to pick the provider's git ref (detected from package.json or pyproject.toml when unset)")
	embedCmd.Flags().String("docs-dir", defaults.DocsDir, "Index a local docs directory instead of, or alongside, providers")
	embedCmd.Flags().String("id", defaults.ID, "Block id for --docs-dir")
	embedCmd.Flags().String("label", defaults.Label, "Index label for --docs-dir")
	embedCmd.Flags().Bool("refresh", defaults.Refresh, "Download provider docs again even if cached")
	embedCmd.Flags().Bool("dry-run", defaults.DryRun, "Show the diff without writing")
	embedCmd.Flags().Bool("no-gitignore", defaults.NoGitignore, "Do not add the cache directory to .gitignore")
	embedCmd.Flags().String("regenerate-command", defaults.RegenerateCommand, "Command shown in the index for regenerating docs")
}

func getEmbedConfigFromFlags(cmd *cobra.Command) *EmbedConfig {
	config := NewEmbedConfig()

	config.Providers, _ = cmd.Flags().GetStringSlice("provider")
	config.Version, _ = cmd.Flags().GetString("version")
	config.DocsDir, _ = cmd.Flags().GetString("docs-dir")
	config.ID, _ = cmd.Flags().GetString("id")
	config.Label, _ = cmd.Flags().GetString("label")
	config.Refresh, _ = cmd.Flags().GetBool("refresh")
	config.DryRun, _ = cmd.Flags().GetBool("dry-run")
	config.NoGitignore, _ = cmd.Flags().GetBool("no-gitignore")
	config.RegenerateCommand, _ = cmd.Flags().GetString("regenerate-command")

	return config
}

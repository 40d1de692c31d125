package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jingkaihe/agents-md/pkg/embed"
	"github.com/jingkaihe/agents-md/pkg/presenter"
	"github.com/jingkaihe/agents-md/pkg/remote"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const maxDescriptionWidth = 60

type SkillsEmbedConfig struct {
	Include           []string
	Exclude           []string
	DryRun            bool
	RegenerateCommand string
}

func NewSkillsEmbedConfig() *SkillsEmbedConfig {
	return &SkillsEmbedConfig{}
}

type SkillsListConfig struct {
	Include []string
	Exclude []string
	Format  string
}

func NewSkillsListConfig() *SkillsListConfig {
	return &SkillsListConfig{
		Format: formatTable,
	}
}

type SkillsSearchConfig struct {
	Limit   int
	Format  string
	Timeout time.Duration
}

func NewSkillsSearchConfig() *SkillsSearchConfig {
	return &SkillsSearchConfig{
		Limit:  remote.DefaultSearchLimit,
		Format: formatTable,
	}
}

type SkillsAddConfig struct {
	NoGitignore bool
}

func NewSkillsAddConfig() *SkillsAddConfig {
	return &SkillsAddConfig{}
}

// skillListing is the structured form of a discovered skill
type skillListing struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Source      string   `json:"source" yaml:"source"`
	Origin      string   `json:"origin,omitempty" yaml:"origin,omitempty"`
	Path        string   `json:"path" yaml:"path"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Discover, fetch and embed agent skills",
	Long: `Discover skills from plugins, user and project directories and fetched
repositories, and embed a compact skills index into the output file.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillsEmbedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed the skills index into AGENTS.md",
	Long: `Discover skills and embed an index of them between
<!-- AGENTS-MD-SKILLS-START --> and <!-- AGENTS-MD-SKILLS-END -->.

Skills are read from ~/.claude/plugins/marketplaces, ~/.claude/skills,
.claude/skills, .agents/skills, repositories fetched with 'skills add', and any
extra sources listed under skills.sources in the config file.

Examples:
  agents-md skills embed
  agents-md skills embed --exclude 'internal-*'
  agents-md skills embed -o CLAUDE.md --dry-run`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := getSkillsEmbedConfigFromFlags(cmd)

		skillsConfig, err := buildSkillsConfig(config.Include, config.Exclude, config.DryRun)
		if err != nil {
			return err
		}
		skillsConfig.RegenerateCommand = config.RegenerateCommand

		result := embed.New().EmbedSkills(cmd.Context(), skillsConfig)
		return reportResult(presenter.Default(), result, "Embedded")
	},
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Long: `List the skills that 'skills embed' would index.

Examples:
  agents-md skills list
  agents-md skills list --format json
  agents-md skills list --include 'pdf*'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := getSkillsListConfigFromFlags(cmd)
		if err := validateFormat(config.Format); err != nil {
			return err
		}

		skillsConfig, err := buildSkillsConfig(config.Include, config.Exclude, false)
		if err != nil {
			return err
		}

		found, err := embed.ListSkills(cmd.Context(), skillsConfig)
		if err != nil {
			return err
		}

		if config.Format != formatTable {
			listings := make([]skillListing, 0, len(found))
			for _, s := range found {
				listings = append(listings, skillListing{
					Name:        s.Name,
					Description: s.Description,
					Source:      string(s.Source),
					Origin:      s.OriginLabel,
					Path:        s.Directory(),
					Files:       s.SiblingFiles,
				})
			}
			return writeStructured(cmd.OutOrStdout(), config.Format, listings)
		}

		if len(found) == 0 {
			presenter.Warning("No skills found")
			return nil
		}

		presenter.Section(fmt.Sprintf("Skills (%d)", len(found)))
		rows := make([][]string, 0, len(found))
		for _, s := range found {
			rows = append(rows, []string{s.Name, string(s.Source), s.OriginLabel, truncate(s.Description, maxDescriptionWidth)})
		}
		presenter.Table([]string{"NAME", "SOURCE", "ORIGIN", "DESCRIPTION"}, rows)
		return nil
	},
}

var skillsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the skills.sh directory",
	Long: `Search the public skills directory. Results can be fetched with 'skills add'.

Examples:
  agents-md skills search react
  agents-md skills search "pdf tools" --limit 5 --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getSkillsSearchConfigFromFlags(cmd)
		if err := validateFormat(config.Format); err != nil {
			return err
		}

		ctx := cmd.Context()
		if config.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, config.Timeout)
			defer cancel()
		}

		client := remote.NewClient(remote.WithBaseURL(viper.GetString("skills.search_url")))
		query := strings.Join(args, " ")
		results, err := client.Search(ctx, query, config.Limit)
		if err != nil {
			return err
		}

		if config.Format != formatTable {
			if results == nil {
				results = []remote.SearchResult{}
			}
			return writeStructured(cmd.OutOrStdout(), config.Format, results)
		}

		if len(results) == 0 {
			presenter.Warning(fmt.Sprintf("No skills found for %q", query))
			return nil
		}

		presenter.Section(fmt.Sprintf("Results for %q", query))
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.Name, r.Source, strconv.Itoa(r.Installs)})
		}
		presenter.Table([]string{"NAME", "SOURCE", "INSTALLS"}, rows)
		presenter.Info("\nFetch a repository with: agents-md skills add <source>")
		return nil
	},
}

var skillsAddCmd = &cobra.Command{
	Use:   "add <owner/repo>[@ref]...",
	Short: "Fetch skills from GitHub repositories",
	Long: `Fetch one or more GitHub repositories into the cache directory so their
skills are included by 'skills embed'. Skills are looked up in skills/,
skills/.curated, skills/.experimental, skills/.system, .claude/skills,
.agents/skills and a SKILL.md at the repository root.

Examples:
  agents-md skills add anthropics/skills
  agents-md skills add vercel-labs/agent-skills@main`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getSkillsAddConfigFromFlags(cmd)

		projectDir, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current working directory")
		}

		embedder := embed.New()
		for _, arg := range args {
			repo, ref, err := remote.ParseRepoRef(arg)
			if err != nil {
				return err
			}

			installConfig := embed.NewInstallConfig()
			installConfig.ProjectDir = projectDir
			installConfig.CacheDir = cacheDir()
			installConfig.Repo = repo
			installConfig.Ref = ref
			installConfig.ManageGitignore = !config.NoGitignore

			presenter.Info(fmt.Sprintf("Fetching skills from %s...", repo))
			result, err := embedder.InstallSkills(cmd.Context(), installConfig)
			if err != nil {
				return errors.Wrapf(err, "failed to add %s", repo)
			}
			presenter.Success(fmt.Sprintf("Added skills from %s: %s", result.Repo, strings.Join(result.Skills, ", ")))
		}

		presenter.Info("Run 'agents-md skills embed' to update the skills index")
		return nil
	},
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove <owner/repo>...",
	Short: "Remove fetched skill repositories",
	Long: `Delete repositories previously fetched with 'skills add' from the cache
directory. Run 'skills embed' afterwards to update the index.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		projectDir, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current working directory")
		}

		for _, repo := range args {
			installConfig := embed.NewInstallConfig()
			installConfig.ProjectDir = projectDir
			installConfig.CacheDir = cacheDir()
			installConfig.Repo = repo

			if err := embed.UninstallSkills(installConfig); err != nil {
				return err
			}
			presenter.Success(fmt.Sprintf("Removed %s", repo))
		}
		return nil
	},
}

func buildSkillsConfig(include, exclude []string, dryRun bool) (embed.SkillsConfig, error) {
	target, err := targetConfig(dryRun)
	if err != nil {
		return embed.SkillsConfig{}, err
	}
	sources, err := skillSources(target.ProjectDir)
	if err != nil {
		return embed.SkillsConfig{}, err
	}

	if len(include) == 0 {
		include = viper.GetStringSlice("skills.include")
	}
	if len(exclude) == 0 {
		exclude = viper.GetStringSlice("skills.exclude")
	}

	config := embed.NewSkillsConfig()
	config.TargetConfig = target
	config.Sources = sources
	config.Include = include
	config.Exclude = exclude
	return config, nil
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func init() {
	embedDefaults := NewSkillsEmbedConfig()
	skillsEmbedCmd.Flags().StringSlice("include", embedDefaults.Include, "Only index skills matching these glob patterns")
	skillsEmbedCmd.Flags().StringSlice("exclude", embedDefaults.Exclude, "Skip skills matching these glob patterns")
	skillsEmbedCmd.Flags().Bool("dry-run", embedDefaults.DryRun, "Show the diff without writing")
	skillsEmbedCmd.Flags().String("regenerate-command", embedDefaults.RegenerateCommand, "Command shown in the index for regenerating it")

	listDefaults := NewSkillsListConfig()
	skillsListCmd.Flags().StringSlice("include", listDefaults.Include, "Only list skills matching these glob patterns")
	skillsListCmd.Flags().StringSlice("exclude", listDefaults.Exclude, "Skip skills matching these glob patterns")
	skillsListCmd.Flags().String("format", listDefaults.Format, "Output format (table, json, yaml)")

	searchDefaults := NewSkillsSearchConfig()
	skillsSearchCmd.Flags().Int("limit", searchDefaults.Limit, "Maximum number of results")
	skillsSearchCmd.Flags().String("format", searchDefaults.Format, "Output format (table, json, yaml)")
	skillsSearchCmd.Flags().Duration("timeout", searchDefaults.Timeout, "Give up on the search after this long (0 waits indefinitely)")

	addDefaults := NewSkillsAddConfig()
	skillsAddCmd.Flags().Bool("no-gitignore", addDefaults.NoGitignore, "Do not add the cache directory to .gitignore")

	skillsCmd.AddCommand(skillsEmbedCmd)
	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsSearchCmd)
	skillsCmd.AddCommand(skillsAddCmd)
	skillsCmd.AddCommand(skillsRemoveCmd)
}

func getSkillsEmbedConfigFromFlags(cmd *cobra.Command) *SkillsEmbedConfig {
	config := NewSkillsEmbedConfig()
	config.Include, _ = cmd.Flags().GetStringSlice("include")
	config.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	config.DryRun, _ = cmd.Flags().GetBool("dry-run")
	config.RegenerateCommand, _ = cmd.Flags().GetString("regenerate-command")
	return config
}

func getSkillsListConfigFromFlags(cmd *cobra.Command) *SkillsListConfig {
	config := NewSkillsListConfig()
	config.Include, _ = cmd.Flags().GetStringSlice("include")
	config.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	config.Format, _ = cmd.Flags().GetString("format")
	return config
}

func getSkillsSearchConfigFromFlags(cmd *cobra.Command) *SkillsSearchConfig {
	config := NewSkillsSearchConfig()
	config.Limit, _ = cmd.Flags().GetInt("limit")
	config.Format, _ = cmd.Flags().GetString("format")
	config.Timeout, _ = cmd.Flags().GetDuration("timeout")
	return config
}

func getSkillsAddConfigFromFlags(cmd *cobra.Command) *SkillsAddConfig {
	config := NewSkillsAddConfig()
	config.NoGitignore, _ = cmd.Flags().GetBool("no-gitignore")
	return config
}

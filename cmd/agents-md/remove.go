package main

import (
	"github.com/jingkaihe/agents-md/pkg/embed"
	"github.com/jingkaihe/agents-md/pkg/presenter"
	"github.com/spf13/cobra"
)

type RemoveConfig struct {
	Providers []string
	All       bool
	Skills    bool
	DryRun    bool
}

func NewRemoveConfig() *RemoveConfig {
	return &RemoveConfig{}
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove embedded indexes from AGENTS.md",
	Long: `Remove docs and skills index blocks from the output file. Everything outside
the removed blocks is preserved.

Examples:
  agents-md remove --provider nextjs
  agents-md remove --all --skills
  agents-md remove --skills -o CLAUDE.md`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := getRemoveConfigFromFlags(cmd)

		target, err := targetConfig(config.DryRun)
		if err != nil {
			return err
		}

		removeConfig := embed.NewRemoveConfig()
		removeConfig.TargetConfig = target
		removeConfig.Providers = config.Providers
		removeConfig.AllDocs = config.All
		removeConfig.Skills = config.Skills

		result := embed.New().Remove(cmd.Context(), removeConfig)
		return reportResult(presenter.Default(), result, "Removed")
	},
}

func init() {
	defaults := NewRemoveConfig()
	removeCmd.Flags().StringSliceP("provider", "p", defaults.Providers, "Docs block id to remove (repeatable)")
	removeCmd.Flags().Bool("all", defaults.All, "Remove every docs block")
	removeCmd.Flags().Bool("skills", defaults.Skills, "Remove the skills block")
	removeCmd.Flags().Bool("dry-run", defaults.DryRun, "Show the diff without writing")
}

func getRemoveConfigFromFlags(cmd *cobra.Command) *RemoveConfig {
	config := NewRemoveConfig()

	config.Providers, _ = cmd.Flags().GetStringSlice("provider")
	config.All, _ = cmd.Flags().GetBool("all")
	config.Skills, _ = cmd.Flags().GetBool("skills")
	config.DryRun, _ = cmd.Flags().GetBool("dry-run")

	return config
}

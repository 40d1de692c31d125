package main

import (
	"context"
	"os"
	"strings"

	"github.com/jingkaihe/agents-md/pkg/embed"
	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/presenter"
	"github.com/jingkaihe/agents-md/pkg/remote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.SetEnvPrefix("AGENTS_MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output", embed.DefaultOutputFile)
	viper.SetDefault("cache_dir", embed.DefaultCacheDir)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", logger.FormatText)
	viper.SetDefault("quiet", false)
	viper.SetDefault("skills.search_url", remote.DefaultSearchURL)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.agents-md")
	viper.AddConfigPath(".")

	// A missing config file is fine; defaults, env and flags still apply.
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", logger.FormatText, "Log format (fmt, json)")
	rootCmd.PersistentFlags().StringP("output", "o", embed.DefaultOutputFile, "Markdown file to update, relative to the current directory")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors and command output such as tables and diffs")
	rootCmd.PersistentFlags().String("cache-dir", embed.DefaultCacheDir, "Directory for downloaded docs and skills, relative to the current directory")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

var tracingShutdown func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "agents-md",
	Short: "Embed compact docs and skills indexes into AGENTS.md",
	Long: `agents-md keeps a compact, regenerable index of documentation files and agent
skills inside AGENTS.md or CLAUDE.md. Each index lives between marker comments,
so re-running a command replaces the previous index in place and leaves the rest
of the file untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		presenter.SetQuiet(viper.GetBool("quiet"))

		level := logLevel(viper.GetString("log_level"), explicitLogLevel(cmd))
		if err := logger.Configure(level, viper.GetString("log_format")); err != nil {
			return err
		}

		shutdown, err := initTracing(cmd.Context())
		if err != nil {
			return err
		}
		tracingShutdown = shutdown
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// explicitLogLevel reports whether the log level was chosen by the user
// rather than taken from the default
func explicitLogLevel(cmd *cobra.Command) bool {
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		return true
	}
	return viper.InConfig("log_level") || os.Getenv("AGENTS_MD_LOG_LEVEL") != ""
}

// logLevel lowers progress logging to warnings in quiet mode unless a level
// was set explicitly
func logLevel(configured string, explicit bool) string {
	if presenter.IsQuiet() && !explicit {
		return "warn"
	}
	return configured
}

func main() {
	rootCmd.AddCommand(withTracing(embedCmd))
	rootCmd.AddCommand(withTracing(removeCmd))
	rootCmd.AddCommand(withTracing(skillsCmd))
	rootCmd.AddCommand(versionCmd)

	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)

	if tracingShutdown != nil {
		if shutdownErr := tracingShutdown(ctx); shutdownErr != nil {
			logger.G(ctx).WithError(shutdownErr).Warn("failed to flush traces")
		}
	}

	if err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}

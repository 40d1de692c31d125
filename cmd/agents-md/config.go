package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jingkaihe/agents-md/pkg/docindex"
	"github.com/jingkaihe/agents-md/pkg/embed"
	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/jingkaihe/agents-md/pkg/presenter"
	"github.com/jingkaihe/agents-md/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func targetConfig(dryRun bool) (embed.TargetConfig, error) {
	projectDir, err := os.Getwd()
	if err != nil {
		return embed.TargetConfig{}, errors.Wrap(err, "failed to get current working directory")
	}
	return embed.TargetConfig{
		ProjectDir: projectDir,
		OutputFile: viper.GetString("output"),
		DryRun:     dryRun,
	}, nil
}

func customProviders() (map[string]docindex.Provider, error) {
	return docindex.DecodeProviders(viper.GetStringMap("providers"))
}

// skillSources returns the standard skill locations followed by any
// sources listed under skills.sources in the config file
func skillSources(projectDir string) ([]skills.SourceConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.L.WithError(err).Debug("home directory unavailable, skipping user and plugin skills")
		homeDir = ""
	}

	sources := embed.DefaultSkillSources(homeDir, projectDir, viper.GetString("cache_dir"))

	configured, err := skills.DecodeSourceConfigs(viper.Get("skills.sources"), projectDir)
	if err != nil {
		return nil, err
	}
	return append(sources, configured...), nil
}

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return errors.Errorf("unsupported format %q (expected table, json or yaml)", format)
	}
}

// writeStructured renders v as JSON or YAML
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return enc.Close()
	default:
		return errors.Errorf("unsupported format %q", format)
	}
}

// reportResult prints the outcome of an embed or remove run through out
func reportResult(out presenter.Presenter, result *embed.Result, verb string) error {
	if !result.Success {
		return errors.New(result.Error)
	}

	for _, warning := range result.Warnings {
		out.Warning(warning)
	}

	if result.DryRun {
		diff := result.Change.Diff()
		if diff == "" {
			out.Warning(fmt.Sprintf("Dry run: no changes to %s", result.OutputFile))
			return nil
		}
		out.Diff(diff)
		return nil
	}

	if len(result.Blocks) == 0 {
		out.Warning(fmt.Sprintf("No matching index blocks in %s", result.OutputFile))
		return nil
	}

	for _, block := range result.Blocks {
		id := block.ID
		if id == "" {
			id = "docs"
		}
		if block.Entries > 0 {
			out.Success(fmt.Sprintf("%s %s index (%d entries)", verb, id, block.Entries))
		} else {
			out.Success(fmt.Sprintf("%s %s index", verb, id))
		}
	}

	if result.Change.Written {
		out.Info(fmt.Sprintf("Updated %s", result.OutputFile))
	} else {
		out.Info(fmt.Sprintf("%s is already up to date", result.OutputFile))
	}
	return nil
}

func cacheDir() string {
	return viper.GetString("cache_dir")
}

package main

import (
	"fmt"

	"github.com/jingkaihe/agents-md/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version information of agents-md in JSON format.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := version.Get().JSON()
		if err != nil {
			return errors.Wrap(err, "failed to format version info")
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

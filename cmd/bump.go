package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/reckon/internal/semver"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <version> <major|minor|patch>",
	Short: "Increment a semantic version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := semver.Increment(semver.Parse(args[0]), semver.Bump(args[1]))
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}

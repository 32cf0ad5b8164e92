// Package cmd implements the reckon command line interface. The engines
// stay in-process and pure; these commands are the outer surface that reads
// snapshot files and renders engine output.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/reckon/internal/config"
	"github.com/zjrosen/reckon/internal/telemetry"
)

var (
	cfgFile   string
	traceFlag bool

	cfg config.Config

	shutdownTracing func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "reckon",
	Short: "Change tracking and issue detection for procurement documents",
	Long: `reckon compares document snapshots, tracks revisions with semantic
versions, and runs detection rules over procurement objects to surface
actionable issues.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if traceFlag || cfg.Trace {
			shutdownTracing, err = telemetry.Init(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("starting tracing: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdownTracing == nil {
			return nil
		}
		return shutdownTracing(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a reckon config file")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "emit OpenTelemetry spans to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

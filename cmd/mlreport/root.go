package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlreport",
		Short: "mlreport - metrics reports for ML model predictions",
		Long: `mlreport generates evaluation reports for machine learning models.

Given a file of true targets and model predictions, it computes
classification or regression metrics, renders diagnostic plots, and
writes the report as Markdown, HTML, and JSON.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newMetricsCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newPublishCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evalforge/mlreport/internal/projectconfig"
	"github.com/evalforge/mlreport/internal/publish"
)

func newPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [report-dir]",
		Short: "Upload a report directory to Azure Blob Storage",
		Long: `Upload a rendered report directory to Azure Blob Storage.

The destination comes from the publish section of .mlreport.yaml; the
flags override it. Authentication uses the default Azure credential
chain (environment, managed identity, or az CLI login).

If no directory is specified, the configured output directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: publishCommandE,
	}

	cmd.Flags().String("account-url", "", "Storage account URL")
	cmd.Flags().String("container", "", "Blob container name")
	cmd.Flags().String("prefix", "", "Blob name prefix")

	return cmd
}

func publishCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	accountURL := cfg.Publish.AccountURL
	if v, _ := cmd.Flags().GetString("account-url"); v != "" {
		accountURL = v
	}
	container := cfg.Publish.Container
	if v, _ := cmd.Flags().GetString("container"); v != "" {
		container = v
	}
	prefix := cfg.Publish.Prefix
	if v, _ := cmd.Flags().GetString("prefix"); v != "" {
		prefix = v
	}

	dir := cfg.Output.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("report directory %s: %w", dir, err)
	}

	p, err := publish.New(accountURL, container, prefix)
	if err != nil {
		return err
	}

	uploaded, err := p.PublishDir(cmd.Context(), dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d file(s) to %s/%s\n", len(uploaded), accountURL, container) //nolint:errcheck
	for _, b := range uploaded {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", b) //nolint:errcheck
	}
	return nil
}

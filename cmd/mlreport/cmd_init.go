package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evalforge/mlreport/internal/projectconfig"
	"github.com/evalforge/mlreport/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .mlreport.yaml project config",
		Long: `Initialize a project configuration file.

Writes a .mlreport.yaml with the default settings. Use --interactive to
run a guided wizard that collects the threshold, output settings, and an
optional publish destination.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided setup wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, projectconfig.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := projectconfig.New()
	if interactive {
		var err error
		cfg, err = wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	if err := cfg.Save(dir); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized project config:") //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", cfgPath)              //nolint:errcheck

	return nil
}

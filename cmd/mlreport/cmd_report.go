package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evalforge/mlreport/internal/dataset"
	"github.com/evalforge/mlreport/internal/metrics"
	"github.com/evalforge/mlreport/internal/plots"
	"github.com/evalforge/mlreport/internal/projectconfig"
	"github.com/evalforge/mlreport/internal/report"
	"github.com/evalforge/mlreport/internal/spinner"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <predictions-file>",
		Short: "Generate a full metrics report with plots",
		Long: `Generate a metrics report from a predictions file.

Reads true targets and predictions (CSV or JSON, optionally gzipped),
computes the metric set for the detected task type, renders diagnostic
plots, and writes the report in the configured output formats.

Settings come from .mlreport.yaml when present; flags override it.`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommandE,
	}

	cmd.Flags().Float64("threshold", projectconfig.DefaultThreshold, "Decision threshold for the positive class")
	cmd.Flags().String("out", "", "Output directory (default from config)")
	cmd.Flags().String("name", "", "Report file base name (default from config)")
	cmd.Flags().StringSlice("formats", nil, "Formats to write: markdown, html, json")
	cmd.Flags().String("task", "auto", "Task type: auto, classification, or regression")
	cmd.Flags().Bool("no-plots", false, "Skip plot rendering")

	return cmd
}

func reportCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	threshold := *cfg.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %v is outside [0, 1]", threshold)
	}

	outDir := cfg.Output.Dir
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		outDir = v
	}
	name := cfg.Output.Name
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		name = v
	}
	formats := cfg.Output.Formats
	if v, _ := cmd.Flags().GetStringSlice("formats"); len(v) > 0 {
		formats = v
	}
	for _, f := range formats {
		if f != "markdown" && f != "html" && f != "json" {
			return fmt.Errorf("unsupported format %q: must be markdown, html, or json", f)
		}
	}

	samples, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	task, err := resolveTaskType(cmd, samples)
	if err != nil {
		return err
	}

	plotsEnabled := cfg.Plots.Enabled == nil || *cfg.Plots.Enabled
	if noPlots, _ := cmd.Flags().GetBool("no-plots"); noPlots {
		plotsEnabled = false
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	var rpt *report.Report
	switch task {
	case metrics.TaskClassification:
		set, err := metrics.ComputeClassification(samples, threshold)
		if err != nil {
			return err
		}
		rpt = report.BuildClassification(samples, set)
	case metrics.TaskRegression:
		set, err := metrics.ComputeRegression(samples)
		if err != nil {
			return err
		}
		rpt = report.BuildRegression(samples, set)
	}

	if plotsEnabled {
		opts, err := plotOptions(cfg, threshold)
		if err != nil {
			return err
		}
		stop := func() {}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			stop = spinner.Start(cmd.OutOrStdout(), "rendering plots")
		}
		var rel []string
		if task == metrics.TaskClassification {
			rel, err = plots.RenderClassification(cmd.Context(), samples, outDir, opts)
		} else {
			rel, err = plots.RenderRegression(cmd.Context(), samples, outDir, opts)
		}
		stop()
		if err != nil {
			return err
		}
		rpt.Plots = rel
	}

	written, err := writeReportFiles(rpt, outDir, name, formats)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Report written:") //nolint:errcheck
	for _, p := range written {
		fmt.Fprintf(out, "  %s\n", p) //nolint:errcheck
	}
	for _, p := range rpt.Plots {
		fmt.Fprintf(out, "  %s\n", filepath.Join(outDir, filepath.FromSlash(p))) //nolint:errcheck
	}

	return nil
}

func resolveTaskType(cmd *cobra.Command, samples metrics.Samples) (metrics.TaskType, error) {
	task, _ := cmd.Flags().GetString("task")
	switch task {
	case "auto":
		return metrics.DetectTaskType(samples), nil
	case "classification":
		if err := metrics.ValidateClassification(samples); err != nil {
			return "", err
		}
		return metrics.TaskClassification, nil
	case "regression":
		if err := metrics.Validate(samples); err != nil {
			return "", err
		}
		return metrics.TaskRegression, nil
	default:
		return "", fmt.Errorf("invalid task %q: expected auto, classification, or regression", task)
	}
}

func plotOptions(cfg *projectconfig.ProjectConfig, threshold float64) (plots.Options, error) {
	opts := plots.DefaultOptions()
	opts.Threshold = threshold
	if cfg.Plots.Width > 0 {
		opts.Width = cfg.Plots.Width
	}
	if cfg.Plots.Height > 0 {
		opts.Height = cfg.Plots.Height
	}
	if cfg.Plots.Bins > 0 {
		opts.Bins = cfg.Plots.Bins
	}

	overrides, err := plots.DecodeOverrides(cfg.Plots.Overrides)
	if err != nil {
		return opts, err
	}
	opts.Overrides = overrides
	return opts, nil
}

func writeReportFiles(rpt *report.Report, outDir, name string, formats []string) ([]string, error) {
	var written []string

	if slices.Contains(formats, "markdown") {
		md, err := report.RenderMarkdown(rpt)
		if err != nil {
			return nil, err
		}
		p := filepath.Join(outDir, name+".md")
		if err := os.WriteFile(p, md, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p, err)
		}
		written = append(written, p)
	}

	if slices.Contains(formats, "html") {
		html, err := report.RenderHTML(rpt)
		if err != nil {
			return nil, err
		}
		p := filepath.Join(outDir, name+".html")
		if err := os.WriteFile(p, html, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p, err)
		}
		written = append(written, p)
	}

	if slices.Contains(formats, "json") {
		p := filepath.Join(outDir, name+".json")
		if err := rpt.WriteJSON(p); err != nil {
			return nil, err
		}
		written = append(written, p)
	}

	return written, nil
}

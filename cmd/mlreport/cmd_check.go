package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalforge/mlreport/internal/dataset"
	"github.com/evalforge/mlreport/internal/metrics"
	"github.com/evalforge/mlreport/internal/projectconfig"
	"github.com/evalforge/mlreport/internal/report"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <predictions-file>",
		Short: "Check predictions against metric quality gates",
		Long: `Compute classification metrics and check them against quality gates.

Each gate flag sets a bound on one metric. When every gate passes the
command exits 0; when any gate fails it exits 1. Input or computation
errors exit 2.

Example:
  mlreport check preds.csv --min-auc 0.8 --max-log-loss 0.5`,
		Args:          cobra.ExactArgs(1),
		RunE:          checkCommandE,
		SilenceErrors: true,
	}

	cmd.Flags().Float64("threshold", projectconfig.DefaultThreshold, "Decision threshold for the positive class")
	cmd.Flags().Float64("min-auc", 0, "Minimum acceptable AUC")
	cmd.Flags().Float64("min-accuracy", 0, "Minimum acceptable accuracy")
	cmd.Flags().Float64("min-f1", 0, "Minimum acceptable F1 score")
	cmd.Flags().Float64("max-log-loss", 0, "Maximum acceptable log loss")
	cmd.Flags().String("format", "text", "Output format: text or json")

	return cmd
}

// gateResult is the outcome of one quality gate.
type gateResult struct {
	Metric string  `json:"metric"`
	Bound  string  `json:"bound"`
	Limit  float64 `json:"limit"`
	Value  float64 `json:"value"`
	Passed bool    `json:"passed"`
}

type checkOutput struct {
	Threshold float64      `json:"threshold"`
	Gates     []gateResult `json:"gates"`
	Passed    bool         `json:"passed"`
}

func checkCommandE(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}

	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	threshold := *cfg.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold, _ = cmd.Flags().GetFloat64("threshold")
	}

	samples, err := dataset.Load(args[0])
	if err != nil {
		return err
	}
	set, err := metrics.ComputeClassification(samples, threshold)
	if err != nil {
		return err
	}

	out := checkOutput{Threshold: threshold, Passed: true}
	addGate := func(flag, metric string, value float64, lower bool) {
		if !cmd.Flags().Changed(flag) {
			return
		}
		limit, _ := cmd.Flags().GetFloat64(flag)
		g := gateResult{Metric: metric, Limit: limit, Value: value}
		if lower {
			g.Bound = "min"
			g.Passed = value >= limit
		} else {
			g.Bound = "max"
			g.Passed = value <= limit
		}
		if !g.Passed {
			out.Passed = false
		}
		out.Gates = append(out.Gates, g)
	}

	addGate("min-auc", report.MetricAUC, set.AUC, true)
	addGate("min-accuracy", report.MetricAccuracy, set.Accuracy, true)
	addGate("min-f1", report.MetricF1, set.F1, true)
	addGate("max-log-loss", report.MetricLogLoss, set.LogLoss, false)

	if len(out.Gates) == 0 {
		return fmt.Errorf("no gates specified: set at least one of --min-auc, --min-accuracy, --min-f1, --max-log-loss")
	}

	if format == "json" {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding check result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data)) //nolint:errcheck
	} else {
		printCheckResult(cmd, out)
	}

	if !out.Passed {
		return &GateFailureError{Message: fmt.Sprintf("%d of %d quality gates failed", failedGates(out), len(out.Gates))}
	}
	return nil
}

func failedGates(out checkOutput) int {
	n := 0
	for _, g := range out.Gates {
		if !g.Passed {
			n++
		}
	}
	return n
}

func printCheckResult(cmd *cobra.Command, out checkOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Quality gates (threshold %g):\n", out.Threshold) //nolint:errcheck
	for _, g := range out.Gates {
		icon := "✅"
		if !g.Passed {
			icon = "❌"
		}
		op := ">="
		if g.Bound == "max" {
			op = "<="
		}
		fmt.Fprintf(w, "  %s %s = %.4f (%s %.4f)\n", icon, g.Metric, g.Value, op, g.Limit) //nolint:errcheck
	}
}

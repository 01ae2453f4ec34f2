package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/evalforge/mlreport/internal/dataset"
	"github.com/evalforge/mlreport/internal/metrics"
	"github.com/evalforge/mlreport/internal/projectconfig"
	"github.com/evalforge/mlreport/internal/report"
	"github.com/evalforge/mlreport/internal/statistics"
)

// countPrinter formats sample counts with thousands separators.
var countPrinter = message.NewPrinter(language.English)

func newMetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics <predictions-file>",
		Short: "Print the metric table without writing a report",
		Long: `Compute and print metrics for a predictions file.

Prints the same metric table the report contains, without rendering
plots or writing any files. With --ci, adds bootstrap confidence
intervals for the ranking metrics.`,
		Args: cobra.ExactArgs(1),
		RunE: metricsCommandE,
	}

	cmd.Flags().Float64("threshold", projectconfig.DefaultThreshold, "Decision threshold for the positive class")
	cmd.Flags().StringP("format", "f", "table", "Output format: table or json")
	cmd.Flags().Bool("ci", false, "Include bootstrap confidence intervals")
	cmd.Flags().Float64("confidence", projectconfig.DefaultBootstrapConfidence, "Confidence level for --ci")
	cmd.Flags().Int64("seed", -1, "Random seed for --ci (negative = non-deterministic)")

	return cmd
}

// metricCI pairs a metric value with its bootstrap interval for JSON output.
type metricCI struct {
	Name     string                        `json:"name"`
	Interval statistics.ConfidenceInterval `json:"interval"`
}

func metricsCommandE(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", format)
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

	task, err := resolveTaskTypeAuto(samples)
	if err != nil {
		return err
	}

	var (
		rpt    *report.Report
		clsSet *metrics.ClassificationSet
	)
	switch task {
	case metrics.TaskClassification:
		set, err := metrics.ComputeClassification(samples, threshold)
		if err != nil {
			return err
		}
		clsSet = set
		rpt = report.BuildClassification(samples, set)
	case metrics.TaskRegression:
		set, err := metrics.ComputeRegression(samples)
		if err != nil {
			return err
		}
		rpt = report.BuildRegression(samples, set)
	}

	var intervals []metricCI
	if withCI, _ := cmd.Flags().GetBool("ci"); withCI && task == metrics.TaskClassification {
		confidence, _ := cmd.Flags().GetFloat64("confidence")
		seed, _ := cmd.Flags().GetInt64("seed")
		intervals = bootstrapIntervals(samples, threshold, confidence, seed)
	}

	if format == "json" {
		return printMetricsJSON(cmd, rpt, intervals)
	}
	printMetricsTable(cmd, rpt, intervals)
	if clsSet != nil {
		printLiftTable(cmd, samples)
		fmt.Fprintln(cmd.OutOrStdout())                                             //nolint:errcheck
		fmt.Fprint(cmd.OutOrStdout(), report.FormatInterpretation(clsSet, samples)) //nolint:errcheck
	}
	return nil
}

func printLiftTable(cmd *cobra.Command, samples metrics.Samples) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "\nLift by sample fraction:") //nolint:errcheck
	values := metrics.LiftTable(samples)
	for i, f := range metrics.LiftFractions {
		fmt.Fprintf(w, "  top %3.0f%%  %.2fx\n", f*100, values[i]) //nolint:errcheck
	}
}

func resolveTaskTypeAuto(samples metrics.Samples) (metrics.TaskType, error) {
	task := metrics.DetectTaskType(samples)
	if task == metrics.TaskClassification {
		return task, metrics.ValidateClassification(samples)
	}
	return task, metrics.Validate(samples)
}

func bootstrapIntervals(samples metrics.Samples, threshold, confidence float64, seed int64) []metricCI {
	funcs := []struct {
		name string
		fn   statistics.MetricFunc
	}{
		{report.MetricAUC, metrics.ROCAUC},
		{report.MetricAccuracy, func(s metrics.Samples) float64 {
			return metrics.Accuracy(metrics.Confusion(s, threshold))
		}},
		{report.MetricF1, func(s metrics.Samples) float64 {
			return metrics.F1FromCounts(metrics.Confusion(s, threshold))
		}},
	}

	out := make([]metricCI, 0, len(funcs))
	for _, mf := range funcs {
		out = append(out, metricCI{
			Name:     mf.name,
			Interval: statistics.BootstrapCIWithSeed(samples, mf.fn, confidence, seed),
		})
	}
	return out
}

func printMetricsTable(cmd *cobra.Command, rpt *report.Report, intervals []metricCI) {
	w := cmd.OutOrStdout()

	nameWidth := len("Metric")
	for _, e := range rpt.DataInfo {
		if rw := runewidth.StringWidth(e.Name); rw > nameWidth {
			nameWidth = rw
		}
	}
	for _, e := range rpt.Metrics {
		if rw := runewidth.StringWidth(e.Name); rw > nameWidth {
			nameWidth = rw
		}
	}

	sepWidth := nameWidth + 14
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && tw < sepWidth {
			sepWidth = tw
		}
	}
	sep := strings.Repeat("-", sepWidth)

	fmt.Fprintf(w, "Task: %s\n", rpt.TaskType) //nolint:errcheck
	if rpt.TaskType == metrics.TaskClassification {
		fmt.Fprintf(w, "Threshold: %g\n", rpt.Threshold) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck

	fmt.Fprintln(w, sep) //nolint:errcheck
	for _, e := range rpt.DataInfo {
		value := e.Format()
		if e.Digits <= 0 {
			value = countPrinter.Sprintf("%d", int64(e.Value))
		}
		fmt.Fprintf(w, "%s  %s\n", padRight(e.Name, nameWidth), value) //nolint:errcheck
	}
	fmt.Fprintln(w, sep) //nolint:errcheck

	for _, e := range rpt.Metrics {
		line := fmt.Sprintf("%s  %s", padRight(e.Name, nameWidth), e.Format())
		if ci := findInterval(intervals, e.Name); ci != nil {
			line += fmt.Sprintf("  [%0.4f, %0.4f] @ %.0f%%",
				ci.Interval.Lower, ci.Interval.Upper, ci.Interval.ConfidenceLevel*100)
		}
		fmt.Fprintln(w, line) //nolint:errcheck
	}
	fmt.Fprintln(w, sep) //nolint:errcheck
}

func findInterval(intervals []metricCI, name string) *metricCI {
	for i := range intervals {
		if intervals[i].Name == name {
			return &intervals[i]
		}
	}
	return nil
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func printMetricsJSON(cmd *cobra.Command, rpt *report.Report, intervals []metricCI) error {
	payload := struct {
		*report.Report
		Intervals []metricCI `json:"confidence_intervals,omitempty"`
	}{rpt, intervals}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metrics JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data)) //nolint:errcheck
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evalforge/mlreport/internal/report"
)

var compareOutputFormat string

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <report1.json> <report2.json> [report3.json ...]",
		Short: "Compare multiple report files",
		Long: `Compare metrics from multiple report JSON files side by side.

Loads two or more report files written by 'mlreport report' and shows
per-metric deltas between the first and last file.`,
		Args: cobra.MinimumNArgs(2),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVarP(&compareOutputFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

// metricComparison holds one metric's values across report files.
type metricComparison struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Delta  float64   `json:"delta"`
}

// comparisonReport is the full comparison output.
type comparisonReport struct {
	Files        []string           `json:"files"`
	TaskTypes    []string           `json:"task_types"`
	Thresholds   []float64          `json:"thresholds"`
	SampleCounts []float64          `json:"sample_counts"`
	Metrics      []metricComparison `json:"metrics"`
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	if compareOutputFormat != "table" && compareOutputFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", compareOutputFormat)
	}

	reports := make([]*report.Report, 0, len(args))
	for _, path := range args {
		r, err := report.LoadJSON(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		reports = append(reports, r)
	}

	for _, r := range reports[1:] {
		if r.TaskType != reports[0].TaskType {
			return fmt.Errorf("cannot compare %s and %s reports", reports[0].TaskType, r.TaskType)
		}
	}

	cr := buildComparisonReport(args, reports)

	if compareOutputFormat == "json" {
		return printComparisonJSON(cmd, cr)
	}
	printComparisonTable(cmd, cr)
	return nil
}

func buildComparisonReport(files []string, reports []*report.Report) *comparisonReport {
	cr := &comparisonReport{Files: files}

	for _, r := range reports {
		cr.TaskTypes = append(cr.TaskTypes, string(r.TaskType))
		cr.Thresholds = append(cr.Thresholds, r.Threshold)
		count := 0.0
		for _, e := range r.DataInfo {
			if e.Name == "Count of samples" {
				count = e.Value
				break
			}
		}
		cr.SampleCounts = append(cr.SampleCounts, count)
	}

	// Metric rows follow the first report's order. A metric missing from a
	// later file shows as NaN.
	n := len(reports)
	for _, e := range reports[0].Metrics {
		mc := metricComparison{Name: e.Name}
		for _, r := range reports {
			if v, ok := r.Metric(e.Name); ok {
				mc.Values = append(mc.Values, v)
			} else {
				mc.Values = append(mc.Values, math.NaN())
			}
		}
		mc.Delta = mc.Values[n-1] - mc.Values[0]
		cr.Metrics = append(cr.Metrics, mc)
	}

	return cr
}

func printComparisonTable(cmd *cobra.Command, cr *comparisonReport) {
	w := cmd.OutOrStdout()
	n := len(cr.Files)

	fmt.Fprintln(w, strings.Repeat("=", 70)) //nolint:errcheck
	fmt.Fprintln(w, " COMPARISON REPORT")    //nolint:errcheck
	fmt.Fprintln(w, strings.Repeat("=", 70)) //nolint:errcheck
	fmt.Fprintln(w)                          //nolint:errcheck

	for i, f := range cr.Files {
		fmt.Fprintf(w, "  [%d] %s  (%s, %g samples)\n", i+1, f, cr.TaskTypes[i], cr.SampleCounts[i]) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck

	fmt.Fprintf(w, "  %-32s", "Metric") //nolint:errcheck
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "  [%d]      ", i+1) //nolint:errcheck
	}
	fmt.Fprintf(w, "  Delta\n")                   //nolint:errcheck
	fmt.Fprintln(w, "  "+strings.Repeat("-", 68)) //nolint:errcheck

	for _, mc := range cr.Metrics {
		fmt.Fprintf(w, "  %-32s", mc.Name) //nolint:errcheck
		for _, v := range mc.Values {
			if math.IsNaN(v) {
				fmt.Fprintf(w, "  %-9s", "n/a") //nolint:errcheck
			} else {
				fmt.Fprintf(w, "  %-9.4f", v) //nolint:errcheck
			}
		}
		deltaIcon := " "
		if mc.Delta > 0 {
			deltaIcon = "↑"
		} else if mc.Delta < 0 {
			deltaIcon = "↓"
		}
		fmt.Fprintf(w, "  %s%+.4f\n", deltaIcon, mc.Delta) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck
}

func printComparisonJSON(cmd *cobra.Command, cr *comparisonReport) error {
	data, err := json.MarshalIndent(cr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data)) //nolint:errcheck
	return nil
}

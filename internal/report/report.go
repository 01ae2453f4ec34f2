// Package report builds the metrics report document and renders it to
// Markdown, HTML, and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/evalforge/mlreport/internal/metrics"
)

// Entry is one row of a report table. Digits is the number of decimal places
// used when rendering; 0 renders the value as an integer.
type Entry struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Digits int     `json:"digits"`
}

// Format renders the entry value at its configured precision.
func (e Entry) Format() string {
	if e.Digits <= 0 {
		return strconv.Itoa(int(math.Round(e.Value)))
	}
	return strconv.FormatFloat(e.Value, 'f', e.Digits, 64)
}

// Report is the complete document model: data info, the metric table at a
// stated threshold, and the plot references. It is immutable once built.
type Report struct {
	TaskType    metrics.TaskType `json:"task_type"`
	Threshold   float64          `json:"threshold,omitempty"`
	GeneratedAt time.Time        `json:"generated_at,omitzero"`
	DataInfo    []Entry          `json:"data_info"`
	Metrics     []Entry          `json:"metrics"`
	Plots       []string         `json:"plots,omitempty"`
}

// Metric table row names, matching the rendered document.
const (
	MetricAUC              = "AUC"
	MetricLogLoss          = "Log Loss"
	MetricAveragePrecision = "Average_Precision"
	MetricAccuracy         = "Accuracy"
	MetricPrecision        = "Precision"
	MetricRecall           = "Recall"
	MetricF1               = "F1 Score"
	MetricMCC              = "MCC"
)

// BuildClassification assembles the report for a classification metric set.
func BuildClassification(samples metrics.Samples, set *metrics.ClassificationSet) *Report {
	total := len(samples)
	trueCount := samples.Positives()

	balance := 0.0
	if total > 0 {
		balance = float64(trueCount) / float64(total) * 100
	}

	return &Report{
		TaskType:    metrics.TaskClassification,
		Threshold:   set.Threshold,
		GeneratedAt: time.Now().UTC(),
		DataInfo: []Entry{
			{Name: "Count of samples", Value: float64(total)},
			{Name: "Count True class", Value: float64(trueCount)},
			{Name: "Count False class", Value: float64(total - trueCount)},
			{Name: "Class balance %", Value: round(balance, 1), Digits: 1},
		},
		Metrics: []Entry{
			{Name: MetricAUC, Value: round(set.AUC, 4), Digits: 4},
			{Name: MetricLogLoss, Value: round(set.LogLoss, 4), Digits: 4},
			{Name: MetricAveragePrecision, Value: round(set.AveragePrecision, 4), Digits: 4},
			{Name: MetricAccuracy, Value: round(set.Accuracy, 4), Digits: 4},
			{Name: MetricPrecision, Value: round(set.Precision, 4), Digits: 4},
			{Name: MetricRecall, Value: round(set.Recall, 4), Digits: 4},
			{Name: MetricF1, Value: round(set.F1, 4), Digits: 4},
			{Name: MetricMCC, Value: round(set.MCC, 4), Digits: 4},
			{Name: "TN", Value: float64(set.Counts.TN)},
			{Name: "FP", Value: float64(set.Counts.FP)},
			{Name: "FN", Value: float64(set.Counts.FN)},
			{Name: "TP", Value: float64(set.Counts.TP)},
		},
	}
}

// BuildRegression assembles the report for a regression metric set.
func BuildRegression(samples metrics.Samples, set *metrics.RegressionSet) *Report {
	actuals := make([]float64, len(samples))
	minA, maxA := math.Inf(1), math.Inf(-1)
	for i, s := range samples {
		actuals[i] = s.Actual
		minA = math.Min(minA, s.Actual)
		maxA = math.Max(maxA, s.Actual)
	}
	if len(samples) == 0 {
		minA, maxA = 0, 0
	}

	return &Report{
		TaskType:    metrics.TaskRegression,
		GeneratedAt: time.Now().UTC(),
		DataInfo: []Entry{
			{Name: "Count of samples", Value: float64(len(samples))},
			{Name: "Mean of target", Value: round(metrics.Mean(actuals), 2), Digits: 2},
			{Name: "Std of target", Value: round(metrics.StdDev(actuals), 2), Digits: 2},
			{Name: "Min of target", Value: round(minA, 2), Digits: 2},
			{Name: "Max of target", Value: round(maxA, 2), Digits: 2},
		},
		Metrics: []Entry{
			{Name: "Mean Squared Error", Value: round(set.MSE, 4), Digits: 4},
			{Name: "Mean Squared Log Error", Value: round(set.MSLE, 4), Digits: 4},
			{Name: "Mean Absolute Error", Value: round(set.MAE, 4), Digits: 4},
			{Name: "R^2", Value: round(set.R2, 4), Digits: 4},
			{Name: "Explained Variance Score", Value: round(set.ExplainedVariance, 4), Digits: 4},
			{Name: "Max Error", Value: round(set.MaxError, 4), Digits: 4},
			{Name: "Mean Absolute Percentage Error", Value: round(set.MAPE, 1), Digits: 1},
		},
	}
}

// Metric looks up a metric entry by name. The second return is false when the
// report has no such metric.
func (r *Report) Metric(name string) (float64, bool) {
	for _, e := range r.Metrics {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal json: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// LoadJSON reads a report previously written by WriteJSON.
func LoadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: parse %s: %w", path, err)
	}
	return &r, nil
}

func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

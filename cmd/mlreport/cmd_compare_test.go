package main

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/mlreport/internal/metrics"
	"github.com/evalforge/mlreport/internal/report"
)

func resetCompareGlobals() {
	compareOutputFormat = "table"
}

// createReportFile writes a classification report to a temp JSON file.
func createReportFile(t *testing.T, dir, name string, auc, accuracy float64) string {
	t.Helper()
	r := &report.Report{
		TaskType:  metrics.TaskClassification,
		Threshold: 0.5,
		DataInfo: []report.Entry{
			{Name: "Count of samples", Value: 300},
		},
		Metrics: []report.Entry{
			{Name: report.MetricAUC, Value: auc, Digits: 4},
			{Name: report.MetricAccuracy, Value: accuracy, Digits: 4},
		},
	}
	p := filepath.Join(dir, name)
	require.NoError(t, r.WriteJSON(p))
	return p
}

func TestCompareCommand_RequiresAtLeastTwoArgs(t *testing.T) {
	resetCompareGlobals()

	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{}},
		{"one arg", []string{"one.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCompareCommand()
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestCompareCommand_MissingFile(t *testing.T) {
	resetCompareGlobals()

	cmd := newCompareCommand()
	cmd.SetArgs([]string{"nonexistent1.json", "nonexistent2.json"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestCompareCommand_InvalidFormat(t *testing.T) {
	resetCompareGlobals()

	dir := t.TempDir()
	f1 := createReportFile(t, dir, "r1.json", 0.80, 0.75)
	f2 := createReportFile(t, dir, "r2.json", 0.90, 0.85)

	cmd := newCompareCommand()
	cmd.SetArgs([]string{f1, f2, "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestCompareCommand_MixedTaskTypes(t *testing.T) {
	resetCompareGlobals()

	dir := t.TempDir()
	f1 := createReportFile(t, dir, "r1.json", 0.80, 0.75)

	reg := &report.Report{
		TaskType: metrics.TaskRegression,
		Metrics:  []report.Entry{{Name: "Mean Squared Error", Value: 1.2, Digits: 4}},
	}
	f2 := filepath.Join(dir, "reg.json")
	require.NoError(t, reg.WriteJSON(f2))

	cmd := newCompareCommand()
	cmd.SetArgs([]string{f1, f2})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot compare")
}

func TestCompareCommand_TableOutput(t *testing.T) {
	resetCompareGlobals()

	dir := t.TempDir()
	f1 := createReportFile(t, dir, "r1.json", 0.80, 0.75)
	f2 := createReportFile(t, dir, "r2.json", 0.90, 0.85)

	cmd := newCompareCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{f1, f2})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "COMPARISON REPORT")
	assert.Contains(t, buf.String(), report.MetricAUC)
	assert.Contains(t, buf.String(), "+0.1000")
}

func TestCompareCommand_JSONOutput(t *testing.T) {
	resetCompareGlobals()

	dir := t.TempDir()
	f1 := createReportFile(t, dir, "r1.json", 0.80, 0.75)
	f2 := createReportFile(t, dir, "r2.json", 0.90, 0.85)

	cmd := newCompareCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{f1, f2, "--format", "json"})
	require.NoError(t, cmd.Execute())

	var cr comparisonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cr))
	assert.Len(t, cr.Files, 2)
}

func TestBuildComparisonReport_Deltas(t *testing.T) {
	r1 := &report.Report{
		TaskType: metrics.TaskClassification,
		Metrics: []report.Entry{
			{Name: report.MetricAUC, Value: 0.80, Digits: 4},
			{Name: report.MetricF1, Value: 0.70, Digits: 4},
		},
	}
	r2 := &report.Report{
		TaskType: metrics.TaskClassification,
		Metrics: []report.Entry{
			{Name: report.MetricAUC, Value: 0.95, Digits: 4},
		},
	}

	cr := buildComparisonReport([]string{"r1.json", "r2.json"}, []*report.Report{r1, r2})

	require.Len(t, cr.Metrics, 2)
	assert.InDelta(t, 0.15, cr.Metrics[0].Delta, 0.001)
	// F1 is missing from the second file
	assert.True(t, math.IsNaN(cr.Metrics[1].Values[1]))
}

func TestRootCommand_HasAllSubcommands(t *testing.T) {
	root := newRootCommand()
	want := []string{"report", "metrics", "compare", "check", "validate", "init", "publish"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "root command should have %q subcommand", name)
	}
}

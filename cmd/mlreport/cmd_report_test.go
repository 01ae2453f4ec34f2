package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/mlreport/internal/report"
)

// writePredictionsCSV writes a small classification dataset and returns its path.
func writePredictionsCSV(t *testing.T, dir string) string {
	t.Helper()
	content := "y_true,y_pred\n"
	rows := []string{
		"1,0.92", "1,0.85", "1,0.77", "1,0.64", "1,0.41",
		"0,0.52", "0,0.35", "0,0.28", "0,0.15", "0,0.08",
	}
	for _, r := range rows {
		content += r + "\n"
	}
	p := filepath.Join(dir, "preds.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func writeRegressionCSV(t *testing.T, dir string) string {
	t.Helper()
	content := "y_true,y_pred\n3.1,3.0\n2.4,2.6\n5.0,4.7\n1.2,1.5\n4.4,4.1\n"
	p := filepath.Join(dir, "reg.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReportCommand_WritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", outDir, "--name", "report_metrics"})
	require.NoError(t, cmd.Execute())

	for _, f := range []string{"report_metrics.md", "report_metrics.html", "report_metrics.json"} {
		_, err := os.Stat(filepath.Join(outDir, f))
		assert.NoError(t, err, f)
	}

	entries, err := os.ReadDir(filepath.Join(outDir, "plots"))
	require.NoError(t, err)
	assert.Len(t, entries, 8)
}

func TestReportCommand_MarkdownRoundTrips(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", outDir, "--no-plots"})
	require.NoError(t, cmd.Execute())

	doc, err := os.ReadFile(filepath.Join(outDir, "report_metrics.md"))
	require.NoError(t, err)

	parsed, err := report.ParseMarkdown(doc)
	require.NoError(t, err)

	// 24 of the 25 positive/negative pairs are ranked correctly.
	auc, ok := parsed.Metric(report.MetricAUC)
	require.True(t, ok)
	assert.InDelta(t, 0.96, auc, 0.0001)
}

func TestReportCommand_NoPlots(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", outDir, "--no-plots"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(outDir, "plots"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportCommand_Regression(t *testing.T) {
	dir := t.TempDir()
	preds := writeRegressionCSV(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", outDir, "--formats", "json"})
	require.NoError(t, cmd.Execute())

	r, err := report.LoadJSON(filepath.Join(outDir, "report_metrics.json"))
	require.NoError(t, err)
	assert.Equal(t, "regression", string(r.TaskType))

	entries, err := os.ReadDir(filepath.Join(outDir, "plots"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReportCommand_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", filepath.Join(dir, "out"), "--formats", "pdf"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestReportCommand_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", filepath.Join(dir, "out"), "--threshold", "1.5"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 1]")
}

func TestReportCommand_InvalidTask(t *testing.T) {
	dir := t.TempDir()
	preds := writePredictionsCSV(t, dir)

	cmd := newReportCommand()
	cmd.SetArgs([]string{preds, "--out", filepath.Join(dir, "out"), "--task", "clustering"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task")
}

func TestReportCommand_MissingFile(t *testing.T) {
	cmd := newReportCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.csv"), "--out", t.TempDir()})
	assert.Error(t, cmd.Execute())
}

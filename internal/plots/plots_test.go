package plots

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/mlreport/internal/metrics"
)

func classificationSamples() metrics.Samples {
	var s metrics.Samples
	for i := 0; i < 20; i++ {
		score := float64(i) / 20
		actual := 0.0
		if score >= 0.4 {
			actual = 1
		}
		s = append(s, metrics.Sample{Actual: actual, Predicted: score})
	}
	return s
}

func TestRenderClassification_WritesAllPlots(t *testing.T) {
	outDir := t.TempDir()

	rel, err := RenderClassification(context.Background(), classificationSamples(), outDir, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, rel, 8)

	for _, r := range rel {
		info, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(r)))
		require.NoError(t, err, r)
		assert.Greater(t, info.Size(), int64(0), r)
	}

	assert.Contains(t, rel, "plots/confusion_matrix.png")
	assert.Contains(t, rel, "plots/roc_curve.png")
	assert.Contains(t, rel, "plots/ks_statistic.png")
}

func TestRenderClassification_ReplacesPreviousContents(t *testing.T) {
	outDir := t.TempDir()
	plotsDir := filepath.Join(outDir, PlotsDirName)
	require.NoError(t, os.MkdirAll(plotsDir, 0755))
	stale := filepath.Join(plotsDir, "stale.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err := RenderClassification(context.Background(), classificationSamples(), outDir, DefaultOptions())
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale file should be removed")
}

func TestRenderRegression_WritesBothPlots(t *testing.T) {
	samples := metrics.Samples{
		{Actual: 1.2, Predicted: 1.0},
		{Actual: 2.8, Predicted: 3.1},
		{Actual: 4.0, Predicted: 3.9},
	}
	outDir := t.TempDir()

	rel, err := RenderRegression(context.Background(), samples, outDir, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"plots/predicted_vs_actual.png", "plots/residual_plot.png"}, rel)

	for _, r := range rel {
		_, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(r)))
		require.NoError(t, err)
	}
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderClassification(ctx, classificationSamples(), t.TempDir(), DefaultOptions())
	require.Error(t, err)
}

func TestOptions_SizeAndTitleOverrides(t *testing.T) {
	o := DefaultOptions()
	o.Overrides = map[string]Override{
		"roc_curve": {Title: "My ROC", Width: 6, Height: 4},
	}

	w, h := o.size("roc_curve")
	assert.Equal(t, 6.0, w)
	assert.Equal(t, 4.0, h)
	assert.Equal(t, "My ROC", o.title("roc_curve", "ROC Curve"))

	w, h = o.size("lift_curve")
	assert.Equal(t, DefaultWidthInches, w)
	assert.Equal(t, DefaultHeightInches, h)
	assert.Equal(t, "Lift Curve", o.title("lift_curve", "Lift Curve"))
}

func TestDecodeOverrides(t *testing.T) {
	raw := map[string]map[string]any{
		"roc_curve": {"title": "Custom", "width": 6.5},
	}
	overrides, err := DecodeOverrides(raw)
	require.NoError(t, err)
	assert.Equal(t, "Custom", overrides["roc_curve"].Title)
	assert.Equal(t, 6.5, overrides["roc_curve"].Width)

	empty, err := DecodeOverrides(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestDecodeOverrides_BadType(t *testing.T) {
	raw := map[string]map[string]any{
		"roc_curve": {"width": "wide"},
	}
	_, err := DecodeOverrides(raw)
	require.Error(t, err)
}

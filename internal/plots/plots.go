// Package plots renders the report charts to PNG files under a plots/
// directory.
package plots

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/evalforge/mlreport/internal/metrics"
)

// PlotsDirName is the directory the charts are written into, relative to the
// report output directory.
const PlotsDirName = "plots"

// builder produces one fully assembled chart from the samples.
type builder func(samples metrics.Samples, o Options) (*plot.Plot, error)

// classificationBuilders maps plot names to their builders. The rendered
// file is <name>.png.
var classificationBuilders = map[string]builder{
	"calibration_curve":      calibrationPlot,
	"class_distribution":     classDistributionPlot,
	"confusion_matrix":       confusionMatrixPlot,
	"cumulative_gain":        cumulativeGainPlot,
	"ks_statistic":           ksStatisticPlot,
	"lift_curve":             liftCurvePlot,
	"precision_recall_curve": precisionRecallPlot,
	"roc_curve":              rocCurvePlot,
}

var regressionBuilders = map[string]builder{
	"predicted_vs_actual": predictedVsActualPlot,
	"residual_plot":       residualPlot,
}

// ClassificationPlotNames returns the classification plot names in render
// order.
func ClassificationPlotNames() []string {
	return sortedNames(classificationBuilders)
}

// RegressionPlotNames returns the regression plot names in render order.
func RegressionPlotNames() []string {
	return sortedNames(regressionBuilders)
}

// RenderClassification renders all classification charts into
// <outDir>/plots/, replacing any previous contents. Charts render
// concurrently; the returned paths are relative to outDir and sorted.
func RenderClassification(ctx context.Context, samples metrics.Samples, outDir string, o Options) ([]string, error) {
	return render(ctx, samples, outDir, o, classificationBuilders)
}

// RenderRegression renders the regression charts into <outDir>/plots/.
func RenderRegression(ctx context.Context, samples metrics.Samples, outDir string, o Options) ([]string, error) {
	return render(ctx, samples, outDir, o, regressionBuilders)
}

func render(ctx context.Context, samples metrics.Samples, outDir string, o Options, builders map[string]builder) ([]string, error) {
	plotsDir := filepath.Join(outDir, PlotsDirName)
	if err := os.RemoveAll(plotsDir); err != nil {
		return nil, fmt.Errorf("plots: clearing %s: %w", plotsDir, err)
	}
	if err := os.MkdirAll(plotsDir, 0755); err != nil {
		return nil, fmt.Errorf("plots: creating %s: %w", plotsDir, err)
	}

	names := sortedNames(builders)

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		build := builders[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := build(samples, o)
			if err != nil {
				return fmt.Errorf("plots: building %s: %w", name, err)
			}
			w, h := o.size(name)
			path := filepath.Join(plotsDir, name+".png")
			if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, path); err != nil {
				return fmt.Errorf("plots: saving %s: %w", name, err)
			}
			slog.Debug("rendered plot", "name", name, "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rel := make([]string, len(names))
	for i, name := range names {
		rel[i] = PlotsDirName + "/" + name + ".png"
	}
	return rel, nil
}

func sortedNames(builders map[string]builder) []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

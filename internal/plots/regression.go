package plots

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/evalforge/mlreport/internal/curves"
	"github.com/evalforge/mlreport/internal/metrics"
)

func residualPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("residual_plot", "Residual Plot"), "Predicted Values", "Residuals")

	scatter, err := plotter.NewScatter(xys(curves.Residuals(samples)))
	if err != nil {
		return nil, err
	}
	scatter.Color = plotutil.Color(0)
	p.Add(scatter)

	// Zero-residual reference line across the prediction range.
	minX, maxX := predictionRange(samples)
	zero, err := plotter.NewLine(plotter.XYs{{X: minX, Y: 0}, {X: maxX, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.Color = plotutil.Color(7)
	zero.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(zero)
	return p, nil
}

func predictedVsActualPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("predicted_vs_actual", "Predicted vs Actual"), "Predicted Values", "Actual Values")

	scatter, err := plotter.NewScatter(xys(curves.PredictedVsActual(samples)))
	if err != nil {
		return nil, err
	}
	scatter.Color = plotutil.Color(2)
	p.Add(scatter)

	// y=x reference over the combined data range.
	lo, hi := predictionRange(samples)
	for _, s := range samples {
		lo = math.Min(lo, s.Actual)
		hi = math.Max(hi, s.Actual)
	}
	ideal, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, err
	}
	ideal.Color = plotutil.Color(7)
	ideal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(ideal)
	p.Legend.Add("ideal", ideal)
	return p, nil
}

func predictionRange(samples metrics.Samples) (float64, float64) {
	if len(samples) == 0 {
		return 0, 1
	}
	lo, hi := samples[0].Predicted, samples[0].Predicted
	for _, s := range samples {
		lo = math.Min(lo, s.Predicted)
		hi = math.Max(hi, s.Predicted)
	}
	return lo, hi
}

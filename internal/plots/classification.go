package plots

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/evalforge/mlreport/internal/curves"
	"github.com/evalforge/mlreport/internal/metrics"
)

// newPlot creates a titled, labeled, gridded plot.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func xys(points []curves.Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}

// addLine appends a colored line for the given points and registers it in the
// legend when name is non-empty.
func addLine(p *plot.Plot, points plotter.XYs, name string, colorIdx int) (*plotter.Line, error) {
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(colorIdx)
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return line, nil
}

// addDiagonal draws the dashed y=x chance line over [0,1].
func addDiagonal(p *plot.Plot, name string) error {
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(7)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

func unitSquare(p *plot.Plot) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1.05
}

func rocCurvePlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("roc_curve", "ROC Curve"), "False Positive Rate", "True Positive Rate")

	auc := metrics.ROCAUC(samples)
	if _, err := addLine(p, xys(curves.ROC(samples)), fmt.Sprintf("ROC (AUC = %.4f)", auc), 0); err != nil {
		return nil, err
	}
	if err := addDiagonal(p, "chance"); err != nil {
		return nil, err
	}
	unitSquare(p)
	p.Legend.Top = false
	return p, nil
}

func precisionRecallPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("precision_recall_curve", "Precision-Recall Curve"), "Recall", "Precision")

	ap := metrics.AveragePrecision(samples)
	if _, err := addLine(p, xys(curves.PrecisionRecall(samples)), fmt.Sprintf("PR (AP = %.4f)", ap), 1); err != nil {
		return nil, err
	}
	unitSquare(p)
	return p, nil
}

func calibrationPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("calibration_curve", "Calibration Curve"), "Mean predicted probability", "Fraction of positives")

	bins := curves.Calibration(samples, o.Bins)
	points := make(plotter.XYs, len(bins))
	for i, b := range bins {
		points[i] = plotter.XY{X: b.MeanPredicted, Y: b.FractionPositive}
	}

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	scatter.Color = plotutil.Color(0)
	p.Add(line, scatter)
	p.Legend.Add("model", line)

	if err := addDiagonal(p, "perfectly calibrated"); err != nil {
		return nil, err
	}
	unitSquare(p)
	return p, nil
}

func ksStatisticPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	ks, at := metrics.KSStatisticAt(samples)
	title := o.title("ks_statistic", fmt.Sprintf("KS Statistic: %.4f at %.2f", ks, at))
	p := newPlot(title, "Threshold", "Cumulative fraction")

	posCurve, negCurve := curves.KSCurves(samples)
	if _, err := addLine(p, xys(posCurve), "positive class", 0); err != nil {
		return nil, err
	}
	if _, err := addLine(p, xys(negCurve), "negative class", 1); err != nil {
		return nil, err
	}
	unitSquare(p)
	return p, nil
}

func cumulativeGainPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("cumulative_gain", "Cumulative Gain"), "Fraction of samples", "Fraction of positives captured")

	if _, err := addLine(p, xys(curves.CumulativeGain(samples)), "model", 2); err != nil {
		return nil, err
	}
	if err := addDiagonal(p, "baseline"); err != nil {
		return nil, err
	}
	unitSquare(p)
	return p, nil
}

func liftCurvePlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("lift_curve", "Lift Curve"), "Fraction of samples", "Lift")

	if _, err := addLine(p, xys(curves.LiftCurve(samples)), "model", 3); err != nil {
		return nil, err
	}

	baseline, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 1}})
	if err != nil {
		return nil, err
	}
	baseline.Color = plotutil.Color(7)
	baseline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(baseline)
	p.Legend.Add("baseline", baseline)

	p.X.Min, p.X.Max = 0, 1
	return p, nil
}

func classDistributionPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	p := newPlot(o.title("class_distribution", "Class Distribution"), "Predicted score", "Count")

	negCounts, posCounts := curves.ScoreHistogram(samples, o.Bins)

	width := vg.Points(14)
	negBars, err := plotter.NewBarChart(plotter.Values(negCounts), width)
	if err != nil {
		return nil, err
	}
	negBars.Color = plotutil.Color(1)
	negBars.Offset = -width / 2

	posBars, err := plotter.NewBarChart(plotter.Values(posCounts), width)
	if err != nil {
		return nil, err
	}
	posBars.Color = plotutil.Color(0)
	posBars.Offset = width / 2

	p.Add(negBars, posBars)
	p.Legend.Add("class 0", negBars)
	p.Legend.Add("class 1", posBars)
	p.Legend.Top = true

	labels := make([]string, o.Bins)
	for i := range labels {
		lo := float64(i) / float64(o.Bins)
		hi := float64(i+1) / float64(o.Bins)
		labels[i] = fmt.Sprintf("%.1f-%.1f", lo, hi)
	}
	p.NominalX(labels...)
	return p, nil
}

// confusionGrid adapts ConfusionCounts to the heat map grid interface.
// Columns are predicted labels, rows actual labels.
type confusionGrid struct {
	c metrics.ConfusionCounts
}

func (g confusionGrid) Dims() (int, int) { return 2, 2 }
func (g confusionGrid) X(c int) float64  { return float64(c) }
func (g confusionGrid) Y(r int) float64  { return float64(r) }

func (g confusionGrid) Z(c, r int) float64 {
	switch {
	case r == 0 && c == 0:
		return float64(g.c.TN)
	case r == 0 && c == 1:
		return float64(g.c.FP)
	case r == 1 && c == 0:
		return float64(g.c.FN)
	default:
		return float64(g.c.TP)
	}
}

func confusionMatrixPlot(samples metrics.Samples, o Options) (*plot.Plot, error) {
	counts := metrics.Confusion(samples, o.Threshold)

	title := o.title("confusion_matrix", fmt.Sprintf("Confusion Matrix (threshold %g)", o.Threshold))
	p := newPlot(title, "Predicted label", "Actual label")

	heat := plotter.NewHeatMap(confusionGrid{c: counts}, palette.Heat(12, 1))
	p.Add(heat)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: 0, Y: 0}, {X: 1, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1},
		},
		Labels: []string{
			fmt.Sprintf("TN = %d", counts.TN),
			fmt.Sprintf("FP = %d", counts.FP),
			fmt.Sprintf("FN = %d", counts.FN),
			fmt.Sprintf("TP = %d", counts.TP),
		},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	ticks := []plot.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return p, nil
}

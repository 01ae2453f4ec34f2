// Package curves computes the point series behind the report plots. It is
// pure computation; rendering lives in the plots package.
package curves

import (
	"sort"

	"github.com/evalforge/mlreport/internal/metrics"
)

// Point is a single (x, y) coordinate of a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// sortedByScoreDesc orders a copy of samples by descending score, stable for
// ties.
func sortedByScoreDesc(samples metrics.Samples) metrics.Samples {
	sorted := make(metrics.Samples, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Predicted > sorted[j].Predicted
	})
	return sorted
}

// ROC returns the ROC curve as (FPR, TPR) points, stepping through the
// distinct score thresholds in descending order. The curve always starts at
// (0,0) and ends at (1,1).
func ROC(samples metrics.Samples) []Point {
	pos := samples.Positives()
	neg := len(samples) - pos
	if pos == 0 || neg == 0 {
		return []Point{{0, 0}, {1, 1}}
	}

	sorted := sortedByScoreDesc(samples)
	points := []Point{{0, 0}}
	cumPos, cumNeg := 0, 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j].Predicted == sorted[i].Predicted {
			if sorted[j].Actual != 0 {
				cumPos++
			} else {
				cumNeg++
			}
			j++
		}
		points = append(points, Point{
			X: float64(cumNeg) / float64(neg),
			Y: float64(cumPos) / float64(pos),
		})
		i = j
	}
	return points
}

// PrecisionRecall returns the precision-recall curve as (recall, precision)
// points at each distinct score threshold, descending. The first point pins
// precision at recall 0 to the precision of the top threshold.
func PrecisionRecall(samples metrics.Samples) []Point {
	pos := samples.Positives()
	if pos == 0 || len(samples) == 0 {
		return nil
	}

	sorted := sortedByScoreDesc(samples)
	var points []Point
	tp, fp := 0, 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j].Predicted == sorted[i].Predicted {
			if sorted[j].Actual != 0 {
				tp++
			} else {
				fp++
			}
			j++
		}
		precision := float64(tp) / float64(tp+fp)
		recall := float64(tp) / float64(pos)
		if len(points) == 0 {
			points = append(points, Point{X: 0, Y: precision})
		}
		points = append(points, Point{X: recall, Y: precision})
		i = j
	}
	return points
}

// LiftCurve returns lift as a function of the selected sample fraction,
// one point per sample position.
func LiftCurve(samples metrics.Samples) []Point {
	pos := samples.Positives()
	n := len(samples)
	if pos == 0 || n == 0 {
		return nil
	}

	sorted := sortedByScoreDesc(samples)
	baseRate := float64(pos) / float64(n)
	points := make([]Point, 0, n)
	cumPos := 0
	for i, s := range sorted {
		if s.Actual != 0 {
			cumPos++
		}
		k := i + 1
		points = append(points, Point{
			X: float64(k) / float64(n),
			Y: (float64(cumPos) / float64(k)) / baseRate,
		})
	}
	return points
}

// CumulativeGain returns the fraction of all positives captured within the
// top x fraction of samples, starting at (0,0).
func CumulativeGain(samples metrics.Samples) []Point {
	pos := samples.Positives()
	n := len(samples)
	if pos == 0 || n == 0 {
		return nil
	}

	sorted := sortedByScoreDesc(samples)
	points := make([]Point, 0, n+1)
	points = append(points, Point{0, 0})
	cumPos := 0
	for i, s := range sorted {
		if s.Actual != 0 {
			cumPos++
		}
		points = append(points, Point{
			X: float64(i+1) / float64(n),
			Y: float64(cumPos) / float64(pos),
		})
	}
	return points
}

// KSCurves returns the cumulative score distributions of the positive and
// negative classes, as functions of the decision threshold (descending), for
// the KS plot.
func KSCurves(samples metrics.Samples) (posCurve, negCurve []Point) {
	pos := samples.Positives()
	neg := len(samples) - pos
	if pos == 0 || neg == 0 {
		return nil, nil
	}

	sorted := sortedByScoreDesc(samples)
	cumPos, cumNeg := 0, 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j].Predicted == sorted[i].Predicted {
			if sorted[j].Actual != 0 {
				cumPos++
			} else {
				cumNeg++
			}
			j++
		}
		score := sorted[i].Predicted
		posCurve = append(posCurve, Point{X: score, Y: float64(cumPos) / float64(pos)})
		negCurve = append(negCurve, Point{X: score, Y: float64(cumNeg) / float64(neg)})
		i = j
	}
	return posCurve, negCurve
}

// Residuals returns (predicted, actual-predicted) points for the regression
// residual plot.
func Residuals(samples metrics.Samples) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: s.Predicted, Y: s.Actual - s.Predicted}
	}
	return points
}

// PredictedVsActual returns (predicted, actual) points.
func PredictedVsActual(samples metrics.Samples) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: s.Predicted, Y: s.Actual}
	}
	return points
}

package curves

import "github.com/evalforge/mlreport/internal/metrics"

// DefaultCalibrationBins is the bin count used by the calibration plot.
const DefaultCalibrationBins = 10

// CalibrationBin aggregates samples whose scores fall into one uniform-width
// probability bin.
type CalibrationBin struct {
	MeanPredicted    float64 `json:"mean_predicted"`
	FractionPositive float64 `json:"fraction_positive"`
	Count            int     `json:"count"`
}

// Calibration buckets samples into nBins uniform-width score bins over [0, 1]
// and reports, per non-empty bin, the mean predicted score against the
// observed positive fraction. A perfectly calibrated model lies on y=x.
func Calibration(samples metrics.Samples, nBins int) []CalibrationBin {
	if nBins <= 0 || len(samples) == 0 {
		return nil
	}

	sumScore := make([]float64, nBins)
	posCount := make([]int, nBins)
	count := make([]int, nBins)

	for _, s := range samples {
		b := int(s.Predicted * float64(nBins))
		if b >= nBins { // score == 1.0 lands in the last bin
			b = nBins - 1
		}
		if b < 0 {
			b = 0
		}
		sumScore[b] += s.Predicted
		count[b]++
		if s.Actual != 0 {
			posCount[b]++
		}
	}

	bins := make([]CalibrationBin, 0, nBins)
	for b := 0; b < nBins; b++ {
		if count[b] == 0 {
			continue
		}
		bins = append(bins, CalibrationBin{
			MeanPredicted:    sumScore[b] / float64(count[b]),
			FractionPositive: float64(posCount[b]) / float64(count[b]),
			Count:            count[b],
		})
	}
	return bins
}

// ScoreHistogram buckets the predicted scores of each class into nBins
// uniform-width bins over [0, 1], for the class distribution plot. The
// returned slices hold per-bin counts for the negative and positive class.
func ScoreHistogram(samples metrics.Samples, nBins int) (negCounts, posCounts []float64) {
	if nBins <= 0 {
		return nil, nil
	}

	negCounts = make([]float64, nBins)
	posCounts = make([]float64, nBins)
	for _, s := range samples {
		b := int(s.Predicted * float64(nBins))
		if b >= nBins {
			b = nBins - 1
		}
		if b < 0 {
			b = 0
		}
		if s.Actual != 0 {
			posCounts[b]++
		} else {
			negCounts[b]++
		}
	}
	return negCounts, posCounts
}

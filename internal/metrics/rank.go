package metrics

import (
	"math"
	"sort"
)

// sortedByScoreDesc returns a copy of samples ordered by descending score.
// The sort is stable so ties keep their input order.
func sortedByScoreDesc(samples Samples) Samples {
	sorted := make(Samples, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Predicted > sorted[j].Predicted
	})
	return sorted
}

// ROCAUC computes the area under the ROC curve using the rank-sum
// (Mann-Whitney) formulation. Tied scores receive their average rank, which
// matches trapezoidal integration over the ROC curve. Returns 0 when only one
// class is present.
func ROCAUC(samples Samples) float64 {
	pos := samples.Positives()
	neg := len(samples) - pos
	if pos == 0 || neg == 0 {
		return 0
	}

	sorted := make(Samples, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Predicted < sorted[j].Predicted
	})

	rankSumPos := 0.0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j].Predicted == sorted[i].Predicted {
			j++
		}
		// 1-based ranks i+1..j share the average rank of the tie group
		avgRank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if sorted[k].Actual != 0 {
				rankSumPos += avgRank
			}
		}
		i = j
	}

	p := float64(pos)
	n := float64(neg)
	return (rankSumPos - p*(p+1)/2) / (p * n)
}

// AveragePrecision summarizes the precision-recall curve as the weighted mean
// of precisions at each threshold, weighted by the recall gained at that
// threshold. Returns 0 when no positives exist.
func AveragePrecision(samples Samples) float64 {
	pos := samples.Positives()
	if pos == 0 {
		return 0
	}

	sorted := sortedByScoreDesc(samples)

	ap := 0.0
	tp, fp := 0, 0
	prevRecall := 0.0
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
		ap += (recall - prevRecall) * precision
		prevRecall = recall
		i = j
	}
	return ap
}

// KSStatistic is the maximum vertical distance between the cumulative score
// distributions of the positive and negative classes. Returns 0 when only one
// class is present.
func KSStatistic(samples Samples) float64 {
	ks, _ := KSStatisticAt(samples)
	return ks
}

// KSStatisticAt returns the KS statistic together with the score at which the
// maximum separation occurs.
func KSStatisticAt(samples Samples) (float64, float64) {
	pos := samples.Positives()
	neg := len(samples) - pos
	if pos == 0 || neg == 0 {
		return 0, 0
	}

	sorted := sortedByScoreDesc(samples)

	maxGap, atScore := 0.0, 0.0
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
		gap := math.Abs(float64(cumPos)/float64(pos) - float64(cumNeg)/float64(neg))
		if gap > maxGap {
			maxGap = gap
			atScore = sorted[i].Predicted
		}
		i = j
	}
	return maxGap, atScore
}

// Lift measures how much better the top fraction of samples (ranked by score)
// performs against random selection: precision within the top fraction divided
// by the overall positive rate. Returns 0 for a degenerate fraction or when no
// positives exist.
func Lift(samples Samples, fraction float64) float64 {
	pos := samples.Positives()
	if pos == 0 || fraction <= 0 || fraction > 1 || len(samples) == 0 {
		return 0
	}

	sorted := sortedByScoreDesc(samples)
	k := int(math.Ceil(fraction * float64(len(sorted))))
	if k < 1 {
		k = 1
	}

	topPos := 0
	for _, s := range sorted[:k] {
		if s.Actual != 0 {
			topPos++
		}
	}

	baseRate := float64(pos) / float64(len(samples))
	return (float64(topPos) / float64(k)) / baseRate
}

// LiftFractions are the sample fractions reported in the lift table.
var LiftFractions = []float64{0.01, 0.05, 0.10, 0.20, 0.30, 0.50}

// LiftTable computes Lift at each of LiftFractions.
func LiftTable(samples Samples) []float64 {
	out := make([]float64, len(LiftFractions))
	for i, f := range LiftFractions {
		out[i] = Lift(samples, f)
	}
	return out
}

package metrics

import "math"

// probEps bounds predicted probabilities away from 0 and 1 before taking
// logarithms in the log loss computation.
const probEps = 1e-15

// ConfusionCounts holds the four cells of a binary confusion matrix.
// TN+FP+FN+TP always equals the sample count the counts were derived from.
type ConfusionCounts struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// Total returns the number of samples the counts were derived from.
func (c ConfusionCounts) Total() int {
	return c.TN + c.FP + c.FN + c.TP
}

// Confusion classifies each sample as positive iff its score >= threshold and
// tallies the four confusion cells against the actual labels.
func Confusion(samples Samples, threshold float64) ConfusionCounts {
	var c ConfusionCounts
	for _, s := range samples {
		predicted := s.Predicted >= threshold
		actual := s.Actual != 0
		switch {
		case actual && predicted:
			c.TP++
		case actual && !predicted:
			c.FN++
		case !actual && predicted:
			c.FP++
		default:
			c.TN++
		}
	}
	return c
}

// ClassificationSet is the full set of binary classification metrics computed
// for one (samples, threshold) pair. Threshold-free metrics (AUC, log loss,
// average precision) are derived from the raw scores; the rest from the
// confusion counts. Values are immutable once computed.
type ClassificationSet struct {
	Threshold        float64         `json:"threshold"`
	AUC              float64         `json:"auc"`
	LogLoss          float64         `json:"log_loss"`
	AveragePrecision float64         `json:"average_precision"`
	Accuracy         float64         `json:"accuracy"`
	Precision        float64         `json:"precision"`
	Recall           float64         `json:"recall"`
	F1               float64         `json:"f1"`
	MCC              float64         `json:"mcc"`
	KS               float64         `json:"ks_statistic"`
	Counts           ConfusionCounts `json:"confusion"`
}

// ComputeClassification validates the samples and derives all classification
// metrics at the given decision threshold. Metrics whose denominator is zero
// (e.g. precision with no predicted positives) are reported as 0.
func ComputeClassification(samples Samples, threshold float64) (*ClassificationSet, error) {
	if err := ValidateClassification(samples); err != nil {
		return nil, err
	}

	counts := Confusion(samples, threshold)
	return &ClassificationSet{
		Threshold:        threshold,
		AUC:              ROCAUC(samples),
		LogLoss:          LogLoss(samples),
		AveragePrecision: AveragePrecision(samples),
		Accuracy:         Accuracy(counts),
		Precision:        PrecisionFromCounts(counts),
		Recall:           RecallFromCounts(counts),
		F1:               F1FromCounts(counts),
		MCC:              MCCFromCounts(counts),
		KS:               KSStatistic(samples),
		Counts:           counts,
	}, nil
}

// Accuracy is (TP+TN)/N. Returns 0 for empty counts.
func Accuracy(c ConfusionCounts) float64 {
	n := c.Total()
	if n == 0 {
		return 0
	}
	return float64(c.TP+c.TN) / float64(n)
}

// PrecisionFromCounts is TP/(TP+FP). Returns 0 when nothing was predicted
// positive.
func PrecisionFromCounts(c ConfusionCounts) float64 {
	if c.TP+c.FP == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// RecallFromCounts is TP/(TP+FN). Returns 0 when no positives exist.
func RecallFromCounts(c ConfusionCounts) float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// F1FromCounts is the harmonic mean of precision and recall, 0 when both are 0.
func F1FromCounts(c ConfusionCounts) float64 {
	p := PrecisionFromCounts(c)
	r := RecallFromCounts(c)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// MCCFromCounts computes the Matthews correlation coefficient from the four
// confusion cells. Returns 0 when any marginal is empty.
func MCCFromCounts(c ConfusionCounts) float64 {
	tp := float64(c.TP)
	tn := float64(c.TN)
	fp := float64(c.FP)
	fn := float64(c.FN)
	den := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	if den == 0 {
		return 0
	}
	return (tp*tn - fp*fn) / den
}

// LogLoss is the mean negative log-likelihood of the actual labels under the
// predicted scores. Scores are clipped to [probEps, 1-probEps].
func LogLoss(samples Samples) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		p := math.Min(math.Max(s.Predicted, probEps), 1-probEps)
		if s.Actual != 0 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(samples))
}

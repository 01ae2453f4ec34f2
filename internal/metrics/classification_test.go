package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportSamples reproduces the confusion cells from the reference report:
// 300 samples, TN=118, FP=17, FN=29, TP=136 at threshold 0.5.
func reportSamples() Samples {
	var s Samples
	add := func(n int, actual, score float64) {
		for i := 0; i < n; i++ {
			s = append(s, Sample{Actual: actual, Predicted: score})
		}
	}
	add(136, 1, 0.9) // TP
	add(29, 1, 0.1)  // FN
	add(118, 0, 0.1) // TN
	add(17, 0, 0.9)  // FP
	return s
}

func TestConfusion_ReportCells(t *testing.T) {
	c := Confusion(reportSamples(), 0.5)

	assert.Equal(t, 118, c.TN)
	assert.Equal(t, 17, c.FP)
	assert.Equal(t, 29, c.FN)
	assert.Equal(t, 136, c.TP)
	assert.Equal(t, 300, c.Total())
}

func TestConfusion_ThresholdIsInclusive(t *testing.T) {
	samples := Samples{{Actual: 1, Predicted: 0.5}}
	c := Confusion(samples, 0.5)
	assert.Equal(t, 1, c.TP, "score equal to threshold classifies as positive")
}

func TestComputeClassification_ReportValues(t *testing.T) {
	set, err := ComputeClassification(reportSamples(), 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 254.0/300.0, set.Accuracy, 1e-12) // 0.8467 at 4dp
	assert.InDelta(t, 136.0/153.0, set.Precision, 1e-12)
	assert.InDelta(t, 136.0/165.0, set.Recall, 1e-12)

	p := 136.0 / 153.0
	r := 136.0 / 165.0
	assert.InDelta(t, 2*p*r/(p+r), set.F1, 1e-12)

	// Rank formulation over the two score levels:
	// clean wins 136*118, half credit for 136*17 + 29*118 ties.
	assert.InDelta(t, 18915.0/22275.0, set.AUC, 1e-12)

	assert.Equal(t, ConfusionCounts{TN: 118, FP: 17, FN: 29, TP: 136}, set.Counts)
}

func TestComputeClassification_MetricRanges(t *testing.T) {
	set, err := ComputeClassification(reportSamples(), 0.5)
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"auc":               set.AUC,
		"average_precision": set.AveragePrecision,
		"accuracy":          set.Accuracy,
		"precision":         set.Precision,
		"recall":            set.Recall,
		"f1":                set.F1,
		"ks":                set.KS,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
	assert.GreaterOrEqual(t, set.MCC, -1.0)
	assert.LessOrEqual(t, set.MCC, 1.0)
	assert.Greater(t, set.LogLoss, 0.0)
}

func TestComputeClassification_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		samples Samples
	}{
		{"empty", Samples{}},
		{"label not binary", Samples{{Actual: 2, Predicted: 0.5}}},
		{"score above one", Samples{{Actual: 1, Predicted: 1.5}}},
		{"score below zero", Samples{{Actual: 0, Predicted: -0.1}}},
		{"nan score", Samples{{Actual: 0, Predicted: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeClassification(tt.samples, 0.5)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestPrecision_ZeroPredictedPositives(t *testing.T) {
	// Nothing above threshold: TP+FP == 0 must yield 0, not NaN.
	samples := Samples{
		{Actual: 1, Predicted: 0.1},
		{Actual: 0, Predicted: 0.2},
	}
	set, err := ComputeClassification(samples, 0.9)
	require.NoError(t, err)

	assert.Zero(t, set.Precision)
	assert.Zero(t, set.F1)
	assert.False(t, math.IsNaN(set.MCC))
}

func TestMCC_PerfectAndInverted(t *testing.T) {
	assert.InDelta(t, 1.0, MCCFromCounts(ConfusionCounts{TN: 5, TP: 5}), 1e-12)
	assert.InDelta(t, -1.0, MCCFromCounts(ConfusionCounts{FN: 5, FP: 5}), 1e-12)
	assert.Zero(t, MCCFromCounts(ConfusionCounts{TP: 10}), "empty marginal yields 0")
}

func TestLogLoss_KnownValue(t *testing.T) {
	samples := Samples{
		{Actual: 1, Predicted: 0.8},
		{Actual: 0, Predicted: 0.2},
	}
	want := -(math.Log(0.8) + math.Log(0.8)) / 2
	assert.InDelta(t, want, LogLoss(samples), 1e-12)
}

func TestLogLoss_ClipsExtremeScores(t *testing.T) {
	// A confidently wrong 0/1 score must stay finite.
	samples := Samples{{Actual: 1, Predicted: 0}}
	got := LogLoss(samples)
	assert.False(t, math.IsInf(got, 1))
	assert.InDelta(t, -math.Log(probEps), got, 1e-3)
}

func TestAccuracy_EmptyCounts(t *testing.T) {
	assert.Zero(t, Accuracy(ConfusionCounts{}))
}

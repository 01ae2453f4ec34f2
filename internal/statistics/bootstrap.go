// Package statistics provides bootstrap confidence intervals for evaluation
// metrics.
package statistics

import (
	"math"
	"math/rand"
	"sort"

	"github.com/evalforge/mlreport/internal/metrics"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval
// computation for one metric.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Point           float64 `json:"point"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// MetricFunc computes a scalar metric over a sample collection.
type MetricFunc func(metrics.Samples) float64

// BootstrapCI computes a percentile bootstrap confidence interval for the
// given metric by resampling the samples with replacement.
// confidenceLevel should be in (0, 1), e.g. 0.95.
// Returns a degenerate interval when fewer than 2 samples exist.
func BootstrapCI(samples metrics.Samples, metric MetricFunc, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(samples, metric, confidenceLevel, -1)
}

// BootstrapCIWithSeed is like BootstrapCI but accepts a seed for
// reproducibility. A negative seed uses a non-deterministic source.
func BootstrapCIWithSeed(samples metrics.Samples, metric MetricFunc, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(samples)
	point := metric(samples)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           point,
			Upper:           point,
			Point:           point,
			ConfidenceLevel: confidenceLevel,
			NumBootstraps:   0,
		}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	iters := DefaultBootstrapIterations

	// Bootstrap: resample with replacement, recompute the metric each time.
	values := make([]float64, iters)
	resample := make(metrics.Samples, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			resample[j] = samples[rng.Intn(n)]
		}
		values[i] = metric(resample)
	}

	sort.Float64s(values)

	// Percentile method
	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           values[loIdx],
		Upper:           values[hiIdx],
		Point:           point,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

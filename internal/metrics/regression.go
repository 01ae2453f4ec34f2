package metrics

import "math"

// mapeEps replaces zero actual values in the MAPE denominator so a single
// zero target does not blow up the whole metric.
const mapeEps = 1e-10

// RegressionSet is the full set of regression metrics computed for one sample
// collection. Values are immutable once computed.
type RegressionSet struct {
	MSE               float64 `json:"mse"`
	MSLE              float64 `json:"msle"`
	MAE               float64 `json:"mae"`
	R2                float64 `json:"r2"`
	ExplainedVariance float64 `json:"explained_variance"`
	MaxError          float64 `json:"max_error"`
	MAPE              float64 `json:"mape"`
}

// ComputeRegression validates the samples and derives all regression metrics.
// Predictions are clamped to be non-negative for the squared log error, the
// way the report treats count-like targets.
func ComputeRegression(samples Samples) (*RegressionSet, error) {
	if err := Validate(samples); err != nil {
		return nil, err
	}

	n := float64(len(samples))
	actuals := make([]float64, len(samples))
	residuals := make([]float64, len(samples))

	var sse, ssle, sae, sape, maxErr float64
	for i, s := range samples {
		d := s.Actual - s.Predicted
		actuals[i] = s.Actual
		residuals[i] = d

		sse += d * d
		sae += math.Abs(d)
		if math.Abs(d) > maxErr {
			maxErr = math.Abs(d)
		}

		ld := math.Log1p(math.Max(s.Actual, 0)) - math.Log1p(math.Max(s.Predicted, 0))
		ssle += ld * ld

		den := math.Abs(s.Actual)
		if den == 0 {
			den = mapeEps
		}
		sape += math.Abs(d) / den
	}

	return &RegressionSet{
		MSE:               sse / n,
		MSLE:              ssle / n,
		MAE:               sae / n,
		R2:                rSquared(actuals, sse),
		ExplainedVariance: explainedVariance(actuals, residuals),
		MaxError:          maxErr,
		MAPE:              sape / n * 100,
	}, nil
}

// rSquared is 1 - SSres/SStot, 0 when the actuals have no variance.
func rSquared(actuals []float64, sse float64) float64 {
	ssTot := Variance(actuals) * float64(len(actuals))
	if ssTot == 0 {
		return 0
	}
	return 1 - sse/ssTot
}

// explainedVariance is 1 - Var(residuals)/Var(actuals), 0 when the actuals
// have no variance.
func explainedVariance(actuals, residuals []float64) float64 {
	va := Variance(actuals)
	if va == 0 {
		return 0
	}
	return 1 - Variance(residuals)/va
}

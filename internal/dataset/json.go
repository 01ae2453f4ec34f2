package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/evalforge/mlreport/internal/metrics"
)

// predictionsFile is the JSON input layout: two parallel arrays.
type predictionsFile struct {
	Actual    []float64 `json:"y_true"`
	Predicted []float64 `json:"y_pred"`
}

// LoadJSON reads samples from a JSON file holding parallel y_true and y_pred
// arrays. The arrays must be the same length.
func LoadJSON(path string) (metrics.Samples, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck

	var pf predictionsFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("json: parse %s: %w", path, err)
	}

	if len(pf.Actual) != len(pf.Predicted) {
		return nil, fmt.Errorf("json: %s: y_true has %d values but y_pred has %d", path, len(pf.Actual), len(pf.Predicted))
	}

	samples := make(metrics.Samples, len(pf.Actual))
	for i := range pf.Actual {
		samples[i] = metrics.Sample{Actual: pf.Actual[i], Predicted: pf.Predicted[i]}
	}
	return samples, nil
}

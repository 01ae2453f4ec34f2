package dataset

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/evalforge/mlreport/internal/metrics"
)

// Column names recognized in the CSV header. Matching is case-insensitive.
const (
	ColumnActual    = "y_true"
	ColumnPredicted = "y_pred"
)

// LoadCSV reads samples from a CSV file. The first row is the header and
// must contain the y_true and y_pred columns; extra columns are ignored.
func LoadCSV(path string) (metrics.Samples, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck

	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	actualCol, predictedCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ColumnActual:
			actualCol = i
		case ColumnPredicted:
			predictedCol = i
		}
	}
	if actualCol < 0 || predictedCol < 0 {
		return nil, fmt.Errorf("csv: %s: header must contain %s and %s columns", path, ColumnActual, ColumnPredicted)
	}

	samples := make(metrics.Samples, 0, len(records)-1)
	for i, record := range records[1:] {
		actual, err := strconv.ParseFloat(strings.TrimSpace(record[actualCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: parsing %s: %w", i+2, ColumnActual, err)
		}
		predicted, err := strconv.ParseFloat(strings.TrimSpace(record[predictedCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: parsing %s: %w", i+2, ColumnPredicted, err)
		}
		samples = append(samples, metrics.Sample{Actual: actual, Predicted: predicted})
	}
	return samples, nil
}

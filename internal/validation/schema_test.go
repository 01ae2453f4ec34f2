package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validPredictionsJSON = `{
  "y_true": [1, 0, 1, 0],
  "y_pred": [0.9, 0.1, 0.8, 0.3]
}`

const missingColumnJSON = `{
  "y_true": [1, 0, 1]
}`

const wrongTypeJSON = `{
  "y_true": [1, 0, "yes"],
  "y_pred": [0.9, 0.1, 0.8]
}`

const extraKeyJSON = `{
  "y_true": [1, 0],
  "y_pred": [0.9, 0.1],
  "labels": ["a", "b"]
}`

func TestValidatePredictionsBytes_Valid(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte(validPredictionsJSON))
	require.Empty(t, errs, "valid predictions should have no errors")
}

func TestValidatePredictionsBytes_MissingColumn(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte(missingColumnJSON))
	require.NotEmpty(t, errs, "missing y_pred should be reported")
	require.Contains(t, joinErrs(errs), "y_pred")
}

func TestValidatePredictionsBytes_WrongItemType(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte(wrongTypeJSON))
	require.NotEmpty(t, errs, "string in a numeric array should be reported")
	require.Contains(t, joinErrs(errs), "/y_true/2")
}

func TestValidatePredictionsBytes_ExtraKey(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte(extraKeyJSON))
	require.NotEmpty(t, errs, "unknown top-level keys should be reported")
}

func TestValidatePredictionsBytes_EmptyArrays(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte(`{"y_true": [], "y_pred": []}`))
	require.NotEmpty(t, errs, "empty arrays should be reported")
}

func TestValidatePredictionsBytes_NotJSON(t *testing.T) {
	errs := ValidatePredictionsBytes([]byte("y_true,y_pred\n1,0.9\n"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "JSON parse error")
}

func TestValidatePredictionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preds.json")
	require.NoError(t, os.WriteFile(path, []byte(validPredictionsJSON), 0644))

	errs, err := ValidatePredictionsFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)
}

func TestValidatePredictionsFile_NotFound(t *testing.T) {
	_, err := ValidatePredictionsFile("/nonexistent/preds.json")
	require.Error(t, err)
}

func joinErrs(errs []string) string {
	result := ""
	for _, e := range errs {
		result += e + "\n"
	}
	return result
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalforge/mlreport/internal/metrics"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzipFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "preds.csv", "y_true,y_pred\n1,0.9\n0,0.2\n")

	samples, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, metrics.Samples{
		{Actual: 1, Predicted: 0.9},
		{Actual: 0, Predicted: 0.2},
	}, samples)
}

func TestLoadCSV_ExtraColumnsAndCase(t *testing.T) {
	path := writeFile(t, "preds.csv", "id,Y_TRUE,note,y_pred\n7,1,ok,0.8\n")

	samples, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, metrics.Sample{Actual: 1, Predicted: 0.8}, samples[0])
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	path := writeFile(t, "preds.csv", "y_true,score\n1,0.9\n")

	_, err := LoadCSV(path)
	require.ErrorContains(t, err, "y_pred")
}

func TestLoadCSV_BadFloat(t *testing.T) {
	path := writeFile(t, "preds.csv", "y_true,y_pred\n1,not-a-number\n")

	_, err := LoadCSV(path)
	require.ErrorContains(t, err, "row 2")
}

func TestLoadCSV_Empty(t *testing.T) {
	path := writeFile(t, "preds.csv", "")

	_, err := LoadCSV(path)
	require.ErrorContains(t, err, "empty")
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "preds.json", `{"y_true":[1,0],"y_pred":[0.9,0.2]}`)

	samples, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, metrics.Samples{
		{Actual: 1, Predicted: 0.9},
		{Actual: 0, Predicted: 0.2},
	}, samples)
}

func TestLoadJSON_LengthMismatch(t *testing.T) {
	path := writeFile(t, "preds.json", `{"y_true":[1,0],"y_pred":[0.9]}`)

	_, err := LoadJSON(path)
	require.ErrorContains(t, err, "y_true has 2 values but y_pred has 1")
}

func TestLoad_GzippedCSV(t *testing.T) {
	path := writeGzipFile(t, "preds.csv.gz", "y_true,y_pred\n1,0.7\n")

	samples, err := Load(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, metrics.Sample{Actual: 1, Predicted: 0.7}, samples[0])
}

func TestLoad_GzippedJSON(t *testing.T) {
	path := writeGzipFile(t, "preds.json.gz", `{"y_true":[0],"y_pred":[0.3]}`)

	samples, err := Load(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "preds.parquet", "binary")

	_, err := Load(path)
	require.ErrorContains(t, err, "unsupported file type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

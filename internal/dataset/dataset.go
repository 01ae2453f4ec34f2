// Package dataset loads (actual, predicted) sample files in CSV or JSON
// form, with transparent gzip decompression for .gz inputs.
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/evalforge/mlreport/internal/metrics"
)

// Load reads a predictions file, dispatching on extension. Supported:
// .csv, .json, and either with a .gz suffix.
func Load(path string) (metrics.Samples, error) {
	switch ext(path) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("dataset: unsupported file type %q (want .csv or .json, optionally gzipped)", filepath.Base(path))
	}
}

// ext returns the file extension with any trailing .gz stripped.
func ext(path string) string {
	name := strings.TrimSuffix(path, ".gz")
	return strings.ToLower(filepath.Ext(name))
}

// open opens path for reading, wrapping it in a gzip reader when the name
// ends in .gz. The returned closer closes both layers.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("dataset: gzip %s: %w", path, err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

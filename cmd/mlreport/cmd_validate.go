package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/evalforge/mlreport/internal/dataset"
	"github.com/evalforge/mlreport/internal/validation"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <predictions-file>",
		Short: "Validate a predictions file without computing metrics",
		Long: `Validate a predictions file.

JSON files are checked against the predictions schema. All files are
then parsed fully, so malformed rows, non-finite values, and length
mismatches are reported too. Exits 1 when the file is invalid.`,
		Args:          cobra.ExactArgs(1),
		RunE:          validateCommandE,
		SilenceErrors: true,
	}
	return cmd
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	path := args[0]
	w := cmd.OutOrStdout()

	var problems []string

	if isJSONFile(path) {
		data, err := readMaybeGzip(path)
		if err != nil {
			return err
		}
		problems = append(problems, validation.ValidatePredictionsBytes(data)...)
	}

	if len(problems) == 0 {
		if _, err := dataset.Load(path); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		fmt.Fprintf(w, "%s: %d problem(s) found\n", path, len(problems)) //nolint:errcheck
		for _, p := range problems {
			fmt.Fprintf(w, "  ❌ %s\n", p) //nolint:errcheck
		}
		return &GateFailureError{Message: fmt.Sprintf("%s failed validation", path)}
	}

	fmt.Fprintf(w, "✅ %s is valid\n", path) //nolint:errcheck
	return nil
}

func isJSONFile(path string) bool {
	p := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	return strings.HasSuffix(p, ".json")
}

func readMaybeGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Report generated, all gates passed
	ExitGateFailed = 1 // Metrics computed but one or more quality gates failed
	ExitError      = 2 // Input, configuration, or runtime error
)

// GateFailureError indicates that metrics were computed successfully,
// but one or more quality gates did not pass.
type GateFailureError struct {
	Message string
}

func (e *GateFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var gateErr *GateFailureError
		if errors.As(err, &gateErr) {
			os.Exit(ExitGateFailed)
		}

		// All other errors are input/runtime errors
		os.Exit(ExitError)
	}
}

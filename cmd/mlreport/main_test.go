package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateFailureError_Message(t *testing.T) {
	err := &GateFailureError{Message: "2 of 3 quality gates failed"}
	assert.Equal(t, "2 of 3 quality gates failed", err.Error())
}

func TestGateFailureError_SurvivesWrapping(t *testing.T) {
	inner := &GateFailureError{Message: "gate failed"}
	wrapped := fmt.Errorf("check: %w", inner)

	var gateErr *GateFailureError
	assert.True(t, errors.As(wrapped, &gateErr))
}

func TestRootCommand_SilencesUsage(t *testing.T) {
	root := newRootCommand()
	assert.True(t, root.SilenceUsage)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsMissingPositionalArguments(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--no-cli"}))
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--not-a-flag"}))
}

func TestRunRejectsMissingInputFile(t *testing.T) {
	code := run([]string{"--no-cli", "--time", "1", "/no/such/inputs.csv", "/no/such/expected.csv", "x"})
	assert.Equal(t, 1, code)
}

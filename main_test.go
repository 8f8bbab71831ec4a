package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTwoPhase(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"instance/testdata/wyndor.lp"}, &out))

	s := out.String()
	assert.Contains(t, s, "max  3x_1 + 5x_2\n")
	assert.Contains(t, s, "method:     twophase\n")
	assert.Contains(t, s, "status:     optimal\n")
	assert.Contains(t, s, "objective:  36\n")
	assert.NotContains(t, s, "basis trace")
}

func TestRunVerboseBigM(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-m", "bigm", "-v", "--resolver", "substitution", "instance/testdata/wyndor.lp"}, &out))

	s := out.String()
	assert.Contains(t, s, "phase 0  iteration 0  iterating\n")
	assert.Contains(t, s, "x_2 enters, x_4 leaves")
	assert.Contains(t, s, "method:     bigm\n")
	assert.Contains(t, s, "objective:  36\n")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Error(t, run([]string{"-m", "simplex", "instance/testdata/wyndor.lp"}, &out))
	assert.Error(t, run([]string{"instance/testdata/absent.lp"}, &out))
}

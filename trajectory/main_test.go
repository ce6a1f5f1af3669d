package main

import (
	"bytes"
	"testing"

	"github.com/next-exp/pesim_go/pkg/beam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReferenceEnergy(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, -880, beam.ReferenceEnergy, beam.DefaultArcSeed, beam.DefaultScaling)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "we should expect the best x at z = -880 to be -44")
	assert.NotContains(t, out.String(), "GeV")
}

func TestRunRescaled(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, -880, 8, beam.DefaultArcSeed, beam.DefaultScaling)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "At 8 GeV")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, -1e6, beam.ReferenceEnergy, beam.DefaultArcSeed, beam.DefaultScaling))
	assert.Error(t, run(&out, -880, -1, beam.DefaultArcSeed, beam.DefaultScaling))
	assert.Error(t, run(&out, -880, beam.ReferenceEnergy, 10, beam.DefaultScaling))
}

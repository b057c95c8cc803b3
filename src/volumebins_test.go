package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeTargets_InspDecreasingExpIncreasing(t *testing.T) {
	insp := volumeTargets(10, 4, 4, true)
	exp := volumeTargets(0, 4, 4, false)

	require.Len(t, insp, 5)
	require.Len(t, exp, 5)

	assert.InDelta(t, 10.0, insp[0], 1e-9)
	assert.InDelta(t, 9.0, insp[1], 1e-9)
	assert.InDelta(t, 6.0, insp[4], 1e-9)

	assert.InDelta(t, 0.0, exp[0], 1e-9)
	assert.InDelta(t, 1.0, exp[1], 1e-9)
	assert.InDelta(t, 4.0, exp[4], 1e-9)
}

func TestInterpolateFlowByVolume_InspExactAndInterpolated(t *testing.T) {
	phase := OriginalPhase{
		Time: []float64{0, 1, 2},
		Vol:  []float64{10, 8, 6},
		Flow: []float64{-1, -2, -3},
	}
	targets := []float64{10, 9, 6}

	flows := interpolateFlowByVolume(phase, targets, true)

	require.Len(t, flows, 3)
	assert.InDelta(t, -1.0, flows[0], 1e-9) // exact match at phase start
	assert.InDelta(t, -1.5, flows[1], 1e-9) // halfway between -1 and -2
	assert.InDelta(t, -3.0, flows[2], 1e-9) // exact match at phase end
}

func TestInterpolateFlowByVolume_ExpExactAndInterpolated(t *testing.T) {
	phase := OriginalPhase{
		Time: []float64{0, 1, 2},
		Vol:  []float64{0, 2, 4},
		Flow: []float64{1, 2, 3},
	}
	targets := []float64{0, 1, 4}

	flows := interpolateFlowByVolume(phase, targets, false)

	require.Len(t, flows, 3)
	assert.InDelta(t, 1.0, flows[0], 1e-9)
	assert.InDelta(t, 1.5, flows[1], 1e-9)
	assert.InDelta(t, 3.0, flows[2], 1e-9)
}

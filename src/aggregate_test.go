package fvavg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanSDAcrossBreaths_TwoBreaths(t *testing.T) {
	phases := []BinnedPhase{
		{Vol: []float64{1, 3}},
		{Vol: []float64{3, 7}},
	}

	mean, sd := meanSDAcrossBreaths(phases, func(p BinnedPhase) []float64 { return p.Vol })

	require.Len(t, mean, 2)
	assert.InDelta(t, 2.0, mean[0], 1e-9)
	assert.InDelta(t, 5.0, mean[1], 1e-9)

	// sample stdev (ddof=1) of {1,3}: mean 2, sq diffs 1+1=2, /(2-1)=2, sqrt=1.41421356
	assert.InDelta(t, 1.4142135623730951, sd[0], 1e-9)
	assert.InDelta(t, 2.8284271247461903, sd[1], 1e-9)
}

func TestMeanSDAcrossBreaths_SingleBreathHasNaNSD(t *testing.T) {
	phases := []BinnedPhase{
		{Vol: []float64{5, 9}},
	}

	mean, sd := meanSDAcrossBreaths(phases, func(p BinnedPhase) []float64 { return p.Vol })

	assert.Equal(t, []float64{5, 9}, mean)
	require.Len(t, sd, 2)
	assert.True(t, math.IsNaN(sd[0]))
	assert.True(t, math.IsNaN(sd[1]))
}

func TestAggregateTimeBins_AddsMeanShiftToVolumeOnly(t *testing.T) {
	breaths := []Breath{
		{
			TimeBinInsp: BinnedPhase{Vol: []float64{1}, Flow: []float64{-1}},
			TimeBinExp:  BinnedPhase{Vol: []float64{2}, Flow: []float64{1}},
		},
	}

	loop := AggregateTimeBins(breaths, 0.5)

	assert.InDelta(t, 1.5, loop.InspVolMean[0], 1e-9)
	assert.InDelta(t, 2.5, loop.ExpVolMean[0], 1e-9)
	assert.InDelta(t, -1.0, loop.InspFlowMean[0], 1e-9)
}

func TestAggregateVolumeBins_NoMeanShiftApplied(t *testing.T) {
	breaths := []Breath{
		{
			VolumeBinInsp: BinnedPhase{Vol: []float64{1}, Flow: []float64{-1}},
			VolumeBinExp:  BinnedPhase{Vol: []float64{2}, Flow: []float64{1}},
		},
	}

	loop := AggregateVolumeBins(breaths)

	assert.InDelta(t, 1.0, loop.InspVolMean[0], 1e-9)
	assert.InDelta(t, 2.0, loop.ExpVolMean[0], 1e-9)
}

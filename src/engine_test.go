package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEndOnSyntheticRecording(t *testing.T) {
	rec := genCycle(t, 5, 200)
	cfg := DefaultConfig()
	cfg.Intervals = 10

	result, err := Run(rec, cfg)

	require.NoError(t, err)
	require.NotEmpty(t, result.Breaths)

	for _, br := range result.Breaths {
		assert.Len(t, br.TimeBinInsp.Vol, cfg.Intervals+1)
		assert.Len(t, br.VolumeBinInsp.Vol, cfg.Intervals+1)
	}

	assert.Len(t, result.TimeBin.InspVolMean, cfg.Intervals+1)
	assert.Len(t, result.VolumeBin.InspVolMean, cfg.Intervals+1)
	assert.Greater(t, result.AvgVtInsp, 0.0)
	assert.Greater(t, result.AvgVtExp, 0.0)
}

func TestRun_InvalidIntervalsIsParameterError(t *testing.T) {
	rec := genCycle(t, 2, 200)
	cfg := Config{Intervals: 0, DefaultPeriod: 0.01}

	_, err := Run(rec, cfg)

	require.Error(t, err)
	var pe *ParameterError
	assert.ErrorAs(t, err, &pe)
}

func TestRun_NoCrossingsIsNoFullBreathError(t *testing.T) {
	rec := RawRecording{
		Time:   []float64{0, 0.01, 0.02},
		Vol:    []float64{0, -0.01, -0.02},
		Flow:   []float64{-1, -1, -1},
		Period: 0.01,
	}

	_, err := Run(rec, DefaultConfig())

	require.Error(t, err)
	var nfb *NoFullBreathError
	assert.ErrorAs(t, err, &nfb)
}

func TestCompareMaxLoop_PassesThroughReferenceUnmodified(t *testing.T) {
	loop := AggregatedLoop{
		InspVolMean: []float64{1, 2},
		ExpVolMean:  []float64{3, 4},
	}
	max := MaxLoop{Vol: []float64{9, 9}, Flow: []float64{1, 1}}

	avgVol, _, maxVol, maxFlow := CompareMaxLoop(loop, max)

	assert.Equal(t, []float64{1, 2, 3, 4}, avgVol)
	assert.Equal(t, max.Vol, maxVol)
	assert.Equal(t, max.Flow, maxFlow)
}

package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBracketingIndexByTime(t *testing.T) {
	times := []float64{0, 1, 2, 3}

	assert.Equal(t, 1, findBracketingIndexByTime(times, 1.5))
	assert.Equal(t, 0, findBracketingIndexByTime(times, 0.5))
	assert.Equal(t, -1, findBracketingIndexByTime(times, 5))
	assert.Equal(t, -1, findBracketingIndexByTime(times, 0))
}

func TestResamplePhaseByTime_EndpointsExact(t *testing.T) {
	phase := OriginalPhase{
		Time: []float64{0, 1, 2},
		Vol:  []float64{0, 5, 10},
		Flow: []float64{-1, -2, -3},
	}

	binned := resamplePhaseByTime(phase, 2, 4)

	require.Len(t, binned.Time, 5)
	assert.Equal(t, phase.Vol[0], binned.Vol[0])
	assert.Equal(t, phase.Flow[0], binned.Flow[0])
	assert.Equal(t, phase.Vol[len(phase.Vol)-1], binned.Vol[4])
	assert.Equal(t, phase.Flow[len(phase.Flow)-1], binned.Flow[4])
}

func TestResamplePhaseByTime_LinearInterpolation(t *testing.T) {
	phase := OriginalPhase{
		Time: []float64{0, 2},
		Vol:  []float64{0, 10},
		Flow: []float64{0, 4},
	}

	binned := resamplePhaseByTime(phase, 2, 2)

	require.Len(t, binned.Vol, 3)
	assert.InDelta(t, 5.0, binned.Vol[1], 1e-9)
	assert.InDelta(t, 2.0, binned.Flow[1], 1e-9)
}

func TestSplitBreaths_RebasesTimeToZero(t *testing.T) {
	samples := []Sample{
		{Time: 10, Vol: 0, Flow: -1},
		{Time: 10.01, Vol: -0.01, Flow: -1},
		{Time: 10.02, Vol: -0.02, Flow: 0},
		{Time: 10.03, Vol: -0.015, Flow: 1},
	}
	phases := []Phase{
		{Length: 2, Insp: true},
		{Length: 2, Insp: false},
	}

	breaths := SplitBreaths(samples, phases, 1)

	require.Len(t, breaths, 1)
	assert.Equal(t, 0.0, breaths[0].OrigInsp.Time[0])
	assert.Equal(t, 0.0, breaths[0].OrigExp.Time[0])
	assert.InDelta(t, 0.01, breaths[0].VtInsp, 1e-9)
}

package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimToWholeBreaths_ProducesEvenWholeBreaths(t *testing.T) {
	rec := genCycle(t, 4, 200)
	samples, phases := DetectZeroCrossings(rec)

	trimmedSamples, trimmedPhases, b, err := TrimToWholeBreaths(samples, phases)

	require.NoError(t, err)
	assert.Greater(t, b, 0)
	assert.Equal(t, 2*b, len(trimmedPhases))
	assert.True(t, trimmedPhases[0].Insp, "a whole-breath sequence starts on inspiration")
	assert.False(t, trimmedPhases[len(trimmedPhases)-1].Insp, "a whole-breath sequence ends on expiration")
	assert.LessOrEqual(t, len(trimmedSamples), len(samples))
	assert.NotEmpty(t, trimmedSamples)

	sum := 0
	for _, p := range trimmedPhases {
		sum += p.Length
	}
	assert.Equal(t, sum, len(trimmedSamples))
}

func TestTrimToWholeBreaths_NoFullBreath(t *testing.T) {
	_, _, _, err := TrimToWholeBreaths(nil, nil)
	require.Error(t, err)
	var nfb *NoFullBreathError
	assert.ErrorAs(t, err, &nfb)
}

func TestTrimToWholeBreaths_TooShortToTrim(t *testing.T) {
	samples := []Sample{{Flow: -1}, {Flow: 0}, {Flow: 1}}
	phases := []Phase{{Length: 2, Insp: true}, {Length: 1, Insp: false}}

	_, _, _, err := TrimToWholeBreaths(samples, phases)
	require.Error(t, err)
	var nfb *NoFullBreathError
	assert.ErrorAs(t, err, &nfb)
}

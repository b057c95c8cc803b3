package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Intervals)
}

func TestConfig_ValidateRejectsNonPositiveFields(t *testing.T) {
	bad := Config{Intervals: 0, DefaultPeriod: 0.01}
	assert.Error(t, bad.Validate())

	bad = Config{Intervals: 10, DefaultPeriod: 0}
	assert.Error(t, bad.Validate())
}

package fvavg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypes_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("boom")

	re := &ReadError{Path: "in.xlsx", Err: cause}
	assert.ErrorIs(t, re, cause)
	assert.Contains(t, re.Error(), "in.xlsx")

	we := &WriteError{Path: "out.xlsx", Err: cause}
	assert.ErrorIs(t, we, cause)
	assert.Contains(t, we.Error(), "out.xlsx")

	nfb := &NoFullBreathError{Reason: "no crossings"}
	assert.Contains(t, nfb.Error(), "no crossings")

	pe := &ParameterError{Name: "Intervals", Value: -1}
	assert.Contains(t, pe.Error(), "Intervals")
}

package fvavg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSubjectID(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{"whole basename is the id", "/data/12345.xlsx", "12345"},
		{"hyphen-separated prefix", "/data/subject-042.xlsx", "042"},
		{"single digit does not count", "/data/file-1.xlsx", ""},
		{"run longer than 7 digits never matches", "/data/file-123456789.xlsx", ""},
		{"no digits at all", "/data/control.xlsx", ""},
		{"first match wins", "/data/2024-99.xlsx", "2024"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExtractSubjectID(c.path))
		})
	}
}

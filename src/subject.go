package fvavg

import (
	"path/filepath"
	"regexp"
	"strings"
)

// subjectIDPattern matches a standalone 2-7 digit run, the same rule
// spec.md §6/§9 names for auto-extracting a subject ID from a filename
// when a manifest entry omits one.
var subjectIDPattern = regexp.MustCompile(`\b\d{2,7}\b`)

// ExtractSubjectID returns the first 2-7 digit run in path's basename
// (extension stripped), or "" if none is found.
func ExtractSubjectID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return subjectIDPattern.FindString(base)
}

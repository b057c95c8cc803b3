package fvavg

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Log is the package-level logger every engine/ingest/consolidate
// function writes batch-failure and progress lines to. cmd/* binaries
// may replace it with NewLogger(os.Stderr) at a different level after
// parsing -v/--verbose.
var Log = NewLogger(os.Stderr)

// NewLogger builds a logger with the engine's standard format: a
// timestamp, a colored level prefix, and a caller-free report (the
// call sites already say which file/subject failed).
func NewLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	return l
}

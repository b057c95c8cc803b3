package fvavg

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

/*
Batch run ledger (adapted from the teacher's daily-name CSV packet
log): a cmd/fvavg batch invocation given --run-log appends one row per input file —
timestamp, file, outcome, detail — to a CSV file, rather than relying
on stderr scrollback to reconstruct what a multi-file run did.
*/

// RunLog appends CSV rows recording one batch run's per-file outcomes.
// Call Close when the batch completes.
type RunLog struct {
	f *os.File
	w *csv.Writer
}

// OpenRunLog opens (creating if needed) a CSV ledger at path, writing
// a header row only if the file is new.
func OpenRunLog(path string) (*RunLog, error) {
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write([]string{"timestamp", "file", "outcome", "detail"}); err != nil {
			f.Close()
			return nil, &WriteError{Path: path, Err: err}
		}
	}

	return &RunLog{f: f, w: w}, nil
}

// Record logs one file's outcome ("ok" or "failed") with a detail
// string (empty on success).
func (l *RunLog) Record(timestamp time.Time, file, outcome, detail string) error {
	return l.w.Write([]string{timestamp.Format(time.RFC3339), filepath.Base(file), outcome, detail})
}

// RecordError is a convenience wrapper over Record for failures.
func (l *RunLog) RecordError(timestamp time.Time, file string, err error) error {
	return l.Record(timestamp, file, "failed", fmt.Sprintf("%s", err))
}

// Close flushes and closes the underlying file.
func (l *RunLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

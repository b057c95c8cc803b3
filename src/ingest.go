package fvavg

import (
	"math"
	"strconv"
	"strings"
)

/*
Ingest (spec.md §4.1, §6).

Two raw formats feed the engine:

  - Formatted: a workbook with exact "Time", "Vol", "Flow" columns,
    read directly (fvavg.py's pd.read_excel(usecols=[...])).
  - Unedited: a single-column dump where a "ltr/s" marker row starts a
    run of flow values and a bare "ltr" marker row starts a run of
    volume values, each run terminated by a blank cell, one header row
    skipped after each marker (data_formatter.py's
    convert_unedited_file). ConvertUnedited turns this into a
    RawRecording with a synthesized time column at the given sample
    period (0.01s by default in cmd/fvavg-format), NaN-padding the
    shorter of the two runs to match the longer.
*/

// ReadFormattedRecording reads a workbook already in Time/Vol/Flow
// column form.
func ReadFormattedRecording(path string) (RawRecording, error) {
	f, err := OpenWorkbook(path)
	if err != nil {
		return RawRecording{}, err
	}
	if len(f.Sheets) == 0 {
		return RawRecording{}, &ReadError{Path: path, Err: errNoSheets}
	}
	sheet := f.Sheets[0]

	timeCol := FindColumnExact(sheet, "Time")
	volCol := FindColumnExact(sheet, "Vol")
	flowCol := FindColumnExact(sheet, "Flow")
	if timeCol < 0 || volCol < 0 || flowCol < 0 {
		return RawRecording{}, &ReadError{Path: path, Err: errMissingColumns}
	}

	t := ReadFloatColumn(sheet, timeCol)
	v := ReadFloatColumn(sheet, volCol)
	fl := ReadFloatColumn(sheet, flowCol)

	n := min3(len(t), len(v), len(fl))
	rec := RawRecording{
		Time:   t[:n],
		Vol:    v[:n],
		Flow:   fl[:n],
		Period: 0.01,
	}
	if n >= 2 {
		rec.Period = t[1] - t[0]
	}
	return rec, nil
}

// ConvertUnedited reads a single-column "unedited" workbook (marker
// rows "ltr/s" and "ltr" each starting a run of values) and returns a
// RawRecording with a synthesized period*(i+1) time column, the shorter of
// the two value runs NaN-padded out to the longer's length.
func ConvertUnedited(path string, period float64) (RawRecording, error) {
	f, err := OpenWorkbook(path)
	if err != nil {
		return RawRecording{}, err
	}
	if len(f.Sheets) == 0 {
		return RawRecording{}, &ReadError{Path: path, Err: errNoSheets}
	}
	sheet := f.Sheets[0]

	var flowValues, volValues []float64
	collectingFlow, collectingVol := false, false
	skipFlowHeader, skipVolHeader := false, false

	for _, row := range sheet.Rows {
		first := ""
		if len(row.Cells) > 0 {
			first = strings.TrimSpace(row.Cells[0].Value)
		}
		lower := strings.ToLower(first)

		if !collectingFlow && strings.Contains(lower, "ltr/s") {
			skipFlowHeader = true
			collectingFlow = true
			continue
		}
		if !collectingVol && lower == "ltr" {
			skipVolHeader = true
			collectingVol = true
			continue
		}
		if skipFlowHeader {
			skipFlowHeader = false
			continue
		}
		if skipVolHeader {
			skipVolHeader = false
			continue
		}

		if collectingFlow {
			if first == "" {
				collectingFlow = false
			} else if v, err := strconv.ParseFloat(first, 64); err == nil {
				flowValues = append(flowValues, v)
			}
		}
		if collectingVol {
			if first == "" {
				collectingVol = false
			} else if v, err := strconv.ParseFloat(first, 64); err == nil {
				volValues = append(volValues, v)
			}
		}
	}

	maxLen := len(flowValues)
	if len(volValues) > maxLen {
		maxLen = len(volValues)
	}

	for len(flowValues) < maxLen {
		flowValues = append(flowValues, math.NaN())
	}
	for len(volValues) < maxLen {
		volValues = append(volValues, math.NaN())
	}

	timeValues := make([]float64, maxLen)
	for i := range timeValues {
		timeValues[i] = period * float64(i+1)
	}

	return RawRecording{Time: timeValues, Vol: volValues, Flow: flowValues, Period: period}, nil
}

// WriteFormattedRecording writes a RawRecording out in Time/Vol/Flow
// column form, the output of ConvertUnedited (cmd/fvavg-format).
func WriteFormattedRecording(rec RawRecording, path string) error {
	f := NewWorkbook()
	_, err := WriteFloatSheet(f, "Sheet1", []string{"Time", "Vol", "Flow"}, [][]float64{rec.Time, rec.Vol, rec.Flow})
	if err != nil {
		return err
	}
	return Save(f, path)
}

// ReadMaxLoop loads a reference (Vol, Flow) workbook for the
// max-loop comparison feature (engine.go's CompareMaxLoop).
func ReadMaxLoop(path string) (MaxLoop, error) {
	f, err := OpenWorkbook(path)
	if err != nil {
		return MaxLoop{}, err
	}
	if len(f.Sheets) == 0 {
		return MaxLoop{}, &ReadError{Path: path, Err: errNoSheets}
	}
	sheet := f.Sheets[0]

	volCol := FindColumnExact(sheet, "Vol")
	flowCol := FindColumnExact(sheet, "Flow")
	if volCol < 0 || flowCol < 0 {
		return MaxLoop{}, &ReadError{Path: path, Err: errMissingColumns}
	}

	return MaxLoop{
		Vol:  ReadFloatColumn(sheet, volCol),
		Flow: ReadFloatColumn(sheet, flowCol),
	}, nil
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

var (
	errNoSheets       = xlsxErr("workbook has no sheets")
	errMissingColumns = xlsxErr("required columns not found")
)

type xlsxErr string

func (e xlsxErr) Error() string { return string(e) }

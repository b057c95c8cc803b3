package fvavg

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

/*
TLC-percent consolidator (spec.md §4.7).

Each input file contributes an inspiration and an expiration (Vol,
Flow) pair read from its "Avg Vol Bin Data" sheet (falling back to the
workbook's first sheet, per reader.py). Volume columns are rescaled to
percent of that file's TLC; flow columns pass through unchanged. The
horizontal layout lays every file's data side by side plus a cross-file
average, normalized back to absolute volume using the average TLC
across files; the separate-files layout instead writes one small
workbook per input (the supplemented feature, WriteSeparate).
*/

var (
	inspVolPattern  = []string{"insp", "vol"}
	inspFlowPattern = []string{"insp", "flow"}
	expVolPattern   = []string{"exp", "vol"}
	expFlowPattern  = []string{"exp", "flow"}
)

const defaultSheetName = "Avg Vol Bin Data"

// TLCInput names one file to consolidate and its known TLC/subject ID
// (subject ID is auto-extracted by the caller via ExtractSubjectID
// when blank).
type TLCInput struct {
	Path      string
	TLC       float64
	SubjectID string
}

// ConsolidatedFile holds one input file's columns after TLC-percent
// conversion.
type ConsolidatedFile struct {
	Path      string
	Filename  string
	SubjectID string
	TLC       float64

	InspVolPercent []float64
	InspFlow       []float64
	ExpVolPercent  []float64
	ExpFlow        []float64
	RawInspVol     []float64
	RawExpVol      []float64
}

// ReadTLCInput loads one input's four data columns and converts volume
// to percent of TLC, matching reader.py's read_excel_file.
func ReadTLCInput(in TLCInput) (ConsolidatedFile, error) {
	if in.TLC <= 0 {
		return ConsolidatedFile{}, &ParameterError{Name: "TLC", Value: in.TLC}
	}

	f, err := OpenWorkbook(in.Path)
	if err != nil {
		return ConsolidatedFile{}, err
	}
	if len(f.Sheets) == 0 {
		return ConsolidatedFile{}, &ReadError{Path: in.Path, Err: errNoSheets}
	}

	sheet := f.Sheet[defaultSheetName]
	if sheet == nil {
		sheet = f.Sheets[0]
	}

	inspVolCol := FindColumn(sheet, inspVolPattern...)
	inspFlowCol := FindColumn(sheet, inspFlowPattern...)
	expVolCol := FindColumn(sheet, expVolPattern...)
	expFlowCol := FindColumn(sheet, expFlowPattern...)
	if inspVolCol < 0 || inspFlowCol < 0 || expVolCol < 0 || expFlowCol < 0 {
		return ConsolidatedFile{}, &ReadError{Path: in.Path, Err: errMissingColumns}
	}

	rawInspVol := ReadFloatColumn(sheet, inspVolCol)
	rawExpVol := ReadFloatColumn(sheet, expVolCol)

	out := ConsolidatedFile{
		Path:       in.Path,
		Filename:   filepath.Base(in.Path),
		SubjectID:  in.SubjectID,
		TLC:        in.TLC,
		InspFlow:   ReadFloatColumn(sheet, inspFlowCol),
		ExpFlow:    ReadFloatColumn(sheet, expFlowCol),
		RawInspVol: rawInspVol,
		RawExpVol:  rawExpVol,
	}
	out.InspVolPercent = percentOfTLC(rawInspVol, in.TLC)
	out.ExpVolPercent = percentOfTLC(rawExpVol, in.TLC)

	return out, nil
}

func percentOfTLC(vol []float64, tlc float64) []float64 {
	out := make([]float64, len(vol))
	for i, v := range vol {
		out[i] = (v / tlc) * 100
	}
	return out
}

// ConsolidationResult is the outcome of consolidating a batch of
// inputs: which succeeded, which failed and why.
type ConsolidationResult struct {
	Files  []ConsolidatedFile
	Failed []string
}

// Consolidate reads every input, logging and skipping any that fail
// rather than aborting the batch (processor.py's process_files
// continue-on-error loop).
func Consolidate(inputs []TLCInput) ConsolidationResult {
	var result ConsolidationResult
	for _, in := range inputs {
		cf, err := ReadTLCInput(in)
		if err != nil {
			Log.Warn("consolidate: skipping file", "file", filepath.Base(in.Path), "err", err)
			result.Failed = append(result.Failed, fmt.Sprintf("%s (%s)", filepath.Base(in.Path), err))
			continue
		}
		result.Files = append(result.Files, cf)
	}
	return result
}

// WriteHorizontal lays every file's data side by side on an
// "Individual Data" sheet with a companion "Raw Data" sheet, plus
// cross-file "Averages", "Absolute Volume Data" and "Normalized
// Average Data" sheets — writer.py's create_horizontal_layout_output.
func WriteHorizontal(result ConsolidationResult, path string) error {
	if len(result.Files) == 0 {
		return &WriteError{Path: path, Err: fmt.Errorf("no successfully consolidated files")}
	}

	maxRows := 0
	for _, cf := range result.Files {
		n := len(cf.InspVolPercent)
		if len(cf.ExpVolPercent) > n {
			n = len(cf.ExpVolPercent)
		}
		if n > maxRows {
			maxRows = n
		}
	}

	f := NewWorkbook()

	rawHeaders := []string{}
	rawCols := [][]float64{}
	indivHeaders := []string{}
	indivCols := [][]float64{}

	var tlcSum float64
	for i, cf := range result.Files {
		label := cf.SubjectID
		if label == "" {
			label = fmt.Sprintf("%d", i+1)
		}

		volCombined := append(padTo(cf.InspVolPercent, maxRows), padTo(cf.ExpVolPercent, maxRows)...)
		flowCombined := append(padTo(cf.InspFlow, maxRows), padTo(cf.ExpFlow, maxRows)...)
		rawVolCombined := append(padTo(cf.RawInspVol, maxRows), padTo(cf.RawExpVol, maxRows)...)

		indivHeaders = append(indivHeaders, "Vol % TLC "+label, flowColumnName(cf))
		indivCols = append(indivCols, volCombined, flowCombined)

		rawHeaders = append(rawHeaders, "Raw Vol "+label, flowColumnName(cf))
		rawCols = append(rawCols, rawVolCombined, flowCombined)

		tlcSum += cf.TLC
	}
	avgTLC := round2(tlcSum / float64(len(result.Files)))

	if _, err := WriteFloatSheet(f, "Raw Data", rawHeaders, rawCols); err != nil {
		return err
	}

	indivSheet, err := WriteFloatSheet(f, "Individual Data", indivHeaders, indivCols)
	if err != nil {
		return err
	}
	indivSheet.AddRow()
	indivSheet.AddRow()
	tlcHeader := indivSheet.AddRow()
	tlcHeader.AddCell().SetValue("File")
	tlcHeader.AddCell().SetValue("Subject ID")
	tlcHeader.AddCell().SetValue("TLC Value")
	for _, cf := range result.Files {
		row := indivSheet.AddRow()
		row.AddCell().SetValue(strings.TrimSuffix(cf.Filename, filepath.Ext(cf.Filename)))
		row.AddCell().SetValue(cf.SubjectID)
		row.AddCell().SetFloat(cf.TLC)
	}
	AppendLabelValueRow(indivSheet, "Average TLC", avgTLC)

	avgInspVol := meanAcrossPadded(result.Files, maxRows, func(cf ConsolidatedFile) []float64 { return cf.InspVolPercent })
	avgExpVol := meanAcrossPadded(result.Files, maxRows, func(cf ConsolidatedFile) []float64 { return cf.ExpVolPercent })
	avgInspFlow := meanAcrossPadded(result.Files, maxRows, func(cf ConsolidatedFile) []float64 { return cf.InspFlow })
	avgExpFlow := meanAcrossPadded(result.Files, maxRows, func(cf ConsolidatedFile) []float64 { return cf.ExpFlow })

	avgVolPercent := append(append([]float64(nil), avgInspVol...), avgExpVol...)
	avgFlow := append(append([]float64(nil), avgInspFlow...), avgExpFlow...)

	avgSheet, err := WriteFloatSheet(f, "Averages", []string{"Average Vol % TLC", "Average Flow"}, [][]float64{avgVolPercent, avgFlow})
	if err != nil {
		return err
	}
	AppendLabelValueRow(avgSheet, "Average TLC", avgTLC)

	absoluteVolCols := make([][]float64, 0, len(indivCols))
	absoluteVolHeaders := make([]string, 0, len(indivHeaders))
	for i := 0; i < len(indivHeaders); i += 2 {
		volHeader := strings.Replace(indivHeaders[i], "Vol % TLC", "Absolute Vol", 1)
		absCol := make([]float64, len(indivCols[i]))
		for r, pct := range indivCols[i] {
			if math.IsNaN(pct) {
				absCol[r] = math.NaN()
				continue
			}
			absCol[r] = pct * avgTLC / 100
		}
		absoluteVolHeaders = append(absoluteVolHeaders, volHeader, indivHeaders[i+1])
		absoluteVolCols = append(absoluteVolCols, absCol, indivCols[i+1])
	}
	absSheet, err := WriteFloatSheet(f, "Absolute Volume Data", absoluteVolHeaders, absoluteVolCols)
	if err != nil {
		return err
	}
	AppendNoteRows(absSheet, fmt.Sprintf("Absolute volumes calculated using average TLC: %v", avgTLC))

	normVol := make([]float64, len(avgVolPercent))
	for i, pct := range avgVolPercent {
		if math.IsNaN(pct) {
			normVol[i] = math.NaN()
			continue
		}
		normVol[i] = pct * avgTLC / 100
	}
	volSD := sdAcrossRows(absoluteVolCols, true)
	flowSD := sdAcrossRows(absoluteVolCols, false)

	normSheet, err := WriteFloatSheet(f, "Normalized Average Data",
		[]string{"Normalized Average Volume", "Average Flow", "Volume StdDev", "Flow StdDev"},
		[][]float64{normVol, avgFlow, volSD, flowSD})
	if err != nil {
		return err
	}
	AppendNoteRows(normSheet, fmt.Sprintf("Normalized average volume calculated using average TLC: %v", avgTLC))
	AppendNoteRows(normSheet,
		"Volume StdDev: Standard deviation across all subjects' absolute volumes",
		"Flow StdDev: Standard deviation across all subjects' flow values")

	return Save(f, path)
}

// WriteSeparate writes one small workbook per input file: a "Data"
// sheet with "Vol % TLC"/"Flow" columns and a trailing TLC row —
// writer.py's create_separate_file_output, the per-subject
// alternative to WriteHorizontal.
func WriteSeparate(cf ConsolidatedFile) error {
	vol := append(append([]float64(nil), cf.InspVolPercent...), cf.ExpVolPercent...)
	flow := append(append([]float64(nil), cf.InspFlow...), cf.ExpFlow...)

	flowHeader := flowColumnName(cf)

	f := NewWorkbook()
	sheet, err := WriteFloatSheet(f, "Data", []string{"Vol % TLC", flowHeader}, [][]float64{vol, flow})
	if err != nil {
		return err
	}
	AppendLabelValueRow(sheet, "TLC", cf.TLC)

	suffix := ""
	if cf.SubjectID != "" {
		suffix = " " + cf.SubjectID
	}
	outPath := strings.TrimSuffix(cf.Path, filepath.Ext(cf.Path)) + "_TLC_percent" + suffix + ".xlsx"
	return Save(f, outPath)
}

func flowColumnName(cf ConsolidatedFile) string {
	if cf.SubjectID != "" {
		return "Flow " + cf.SubjectID
	}
	return "Flow"
}

func padTo(col []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(col) {
			out[i] = col[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func meanAcrossPadded(files []ConsolidatedFile, maxRows int, pick func(ConsolidatedFile) []float64) []float64 {
	out := make([]float64, maxRows)
	for r := 0; r < maxRows; r++ {
		var sum float64
		var count int
		for _, cf := range files {
			col := pick(cf)
			if r < len(col) {
				sum += col[r]
				count++
			}
		}
		if count == 0 {
			out[r] = math.NaN()
			continue
		}
		out[r] = sum / float64(count)
	}
	return out
}

// sdAcrossRows computes, per row, the sample standard deviation across
// the "volume" (wantVol=true) or "flow" (wantVol=false) columns of a
// side-by-side column set, the way writer.py's vol_std_dev/
// flow_std_dev loops do, skipping blank/NaN cells and requiring at
// least two values.
func sdAcrossRows(cols [][]float64, wantVol bool) []float64 {
	if len(cols) == 0 {
		return nil
	}
	rows := 0
	for i := 0; i < len(cols); i += 2 {
		if len(cols[i]) > rows {
			rows = len(cols[i])
		}
	}

	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		var values []float64
		for i := 0; i < len(cols); i += 2 {
			col := cols[i]
			if !wantVol {
				col = cols[i+1]
			}
			if r < len(col) && !math.IsNaN(col[r]) {
				values = append(values, col[r])
			}
		}
		if len(values) < 2 {
			out[r] = math.NaN()
			continue
		}
		out[r] = round3(sampleSD(values))
	}
	return out
}

func sampleSD(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Package fvavg implements the Flow-Volume Averaging (FVAvg) engine:
// zero-crossing breath segmentation, time-bin and volume-bin
// resampling, and cross-breath aggregation of tidal-breathing
// flow/volume recordings.
package fvavg

// Sample is one (time, volume, flow) triple of a recording, or of an
// augmented sequence produced by the zero-crossing detector.
type Sample struct {
	Time float64
	Vol  float64
	Flow float64
}

// Phase identifies one maximal run of monotone-signed flow inside the
// augmented sequence, in terms of its length in samples and whether it
// is an inspiration (Flow < 0) or expiration (Flow > 0) phase.
type Phase struct {
	Length int
	Insp   bool
}

// RawRecording is the three equal-length numeric sequences the
// Ingester hands to the engine, sampled at a uniform period.
type RawRecording struct {
	Time   []float64
	Vol    []float64
	Flow   []float64
	Period float64
}

// BinnedPhase holds one phase (inspiration or expiration) of one
// breath, resampled onto K+1 bins by either the time-bin or the
// volume-bin scheme.
type BinnedPhase struct {
	Time []float64
	Vol  []float64
	Flow []float64
}

// OriginalPhase holds the raw (unbinned) samples of one phase of one
// breath, with time rebased so the phase starts at zero. This is the
// input to the volume-bin resampler (§4.5) and is also what gets
// written to the "Original Breath i" output sheet.
type OriginalPhase struct {
	Time []float64
	Vol  []float64
	Flow []float64
}

// Breath is one inspiration phase immediately followed by one
// expiration phase, carrying both resampling schemes plus the scalar
// tidal volume/time summaries spec.md §3 calls for.
type Breath struct {
	Index int

	OrigInsp OriginalPhase
	OrigExp  OriginalPhase

	TimeBinInsp BinnedPhase
	TimeBinExp  BinnedPhase

	// NotNormalizedTimeBinInsp/Exp are the time-bin result before the
	// volume-normalization pass of §4.4 step 1-4 is applied; kept
	// around because the output workbook has a dedicated
	// "Not Normalized" sheet per breath.
	NotNormalizedTimeBinInsp BinnedPhase
	NotNormalizedTimeBinExp  BinnedPhase

	VolumeBinInsp BinnedPhase
	VolumeBinExp  BinnedPhase

	TtInsp float64 // phase duration, seconds
	TtExp  float64
	VtInsp float64 // |volume excursion|
	VtExp  float64
}

// AggregatedLoop holds, for each phase (inspiration and expiration) and
// each quantity (volume and flow), the per-bin mean and sample standard
// deviation across all breaths — for one resampling scheme.
type AggregatedLoop struct {
	InspVolMean  []float64
	InspVolSD    []float64
	InspFlowMean []float64
	InspFlowSD   []float64

	ExpVolMean  []float64
	ExpVolSD    []float64
	ExpFlowMean []float64
	ExpFlowSD   []float64
}

// Result is the full output of one FVAvg run over one recording.
type Result struct {
	Intervals int
	Breaths   []Breath

	// ZeroedTime/Vol/Flow are the full augmented sequence produced by
	// the zero-crossing detector, before TrimToWholeBreaths discards
	// any leading/trailing partial breath.
	ZeroedTime []float64
	ZeroedVol  []float64
	ZeroedFlow []float64

	TimeBin   AggregatedLoop
	VolumeBin AggregatedLoop

	MeanShift float64
	AvgVtInsp float64
	AvgVtExp  float64
}

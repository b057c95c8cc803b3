package fvavg

/*
Engine entry point (spec.md §3-§4).

Run wires the five passes into one: zero-crossing detection, trimming
to whole breaths, splitting into per-breath phases, the two resampling
schemes, and cross-breath aggregation. Ingest (§4.1) happens before
Run is called; workbook writing (§6) happens after.
*/

// Run executes the full FVAvg pipeline over one raw recording and
// returns the aggregated result.
func Run(rec RawRecording, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	samples, phases := DetectZeroCrossings(rec)

	trimmedSamples, trimmedPhases, b, err := TrimToWholeBreaths(samples, phases)
	if err != nil {
		return Result{}, err
	}

	breaths := SplitBreaths(trimmedSamples, trimmedPhases, b)

	meanShift, avgVtInsp, avgVtExp := ResampleTimeBins(breaths, cfg.Intervals)
	ResampleVolumeBins(breaths, cfg.Intervals)

	timeBin := AggregateTimeBins(breaths, meanShift)
	volumeBin := AggregateVolumeBins(breaths)

	result := Result{
		Intervals: cfg.Intervals,
		Breaths:   breaths,
		TimeBin:   timeBin,
		VolumeBin: volumeBin,
		MeanShift: meanShift,
		AvgVtInsp: avgVtInsp,
		AvgVtExp:  avgVtExp,
	}
	result.ZeroedTime = make([]float64, len(samples))
	result.ZeroedVol = make([]float64, len(samples))
	result.ZeroedFlow = make([]float64, len(samples))
	for i, s := range samples {
		result.ZeroedTime[i] = s.Time
		result.ZeroedVol[i] = s.Vol
		result.ZeroedFlow[i] = s.Flow
	}

	return result, nil
}

// MaxLoop is a reference (Vol, Flow) curve loaded from a second,
// independently produced workbook, reported alongside an averaged loop
// for comparison rather than recomputed by the engine.
type MaxLoop struct {
	Vol  []float64
	Flow []float64
}

// CompareMaxLoop pairs an aggregated loop with a max-loop reference
// curve for side-by-side reporting. It performs no resampling: the two
// series are written as-is, length mismatches included, since the
// comparison is visual/numeric rather than point-paired.
func CompareMaxLoop(loop AggregatedLoop, max MaxLoop) (avgVol, avgFlow, maxVol, maxFlow []float64) {
	avgVol = append(append([]float64(nil), loop.InspVolMean...), loop.ExpVolMean...)
	avgFlow = append(append([]float64(nil), loop.InspFlowMean...), loop.ExpFlowMean...)
	return avgVol, avgFlow, max.Vol, max.Flow
}

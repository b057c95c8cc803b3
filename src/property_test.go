package fvavg

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPhaseParity_PropertyAcrossSyntheticCycles checks spec.md §8
// properties 1-2: a recording built from whole breath cycles always
// trims to an even phase count, and every resampled phase always has
// exactly Intervals+1 points, across a range of cycle counts, phase
// lengths and bin counts.
func TestPhaseParity_PropertyAcrossSyntheticCycles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cycles := rapid.IntRange(2, 8).Draw(rt, "cycles")
		phaseLen := rapid.IntRange(120, 300).Draw(rt, "phaseLen")
		intervals := rapid.IntRange(1, 50).Draw(rt, "intervals")

		rec := genCycleForRapid(cycles, phaseLen)
		cfg := Config{Intervals: intervals, DefaultPeriod: 0.01}

		result, err := Run(rec, cfg)
		if err != nil {
			// A pathological draw (too few whole breaths survive
			// trimming) is acceptable; it must fail cleanly, not panic.
			return
		}

		_, trimmedPhases, b, err := TrimToWholeBreaths(DetectZeroCrossings(rec))
		if err != nil {
			rt.Fatalf("trim failed although Run succeeded: %v", err)
		}
		if len(trimmedPhases) != 2*b || b != len(result.Breaths) {
			rt.Fatalf("phase count = %d, breaths = %d, want phase count 2*%d", len(trimmedPhases), len(result.Breaths), b)
		}

		for _, br := range result.Breaths {
			if len(br.TimeBinInsp.Vol) != intervals+1 {
				rt.Fatalf("time-bin insp length = %d, want %d", len(br.TimeBinInsp.Vol), intervals+1)
			}
			if len(br.TimeBinExp.Vol) != intervals+1 {
				rt.Fatalf("time-bin exp length = %d, want %d", len(br.TimeBinExp.Vol), intervals+1)
			}
			if len(br.VolumeBinInsp.Vol) != intervals+1 {
				rt.Fatalf("volume-bin insp length = %d, want %d", len(br.VolumeBinInsp.Vol), intervals+1)
			}
		}

		if len(result.TimeBin.InspVolMean) != intervals+1 {
			rt.Fatalf("aggregated time-bin length = %d, want %d", len(result.TimeBin.InspVolMean), intervals+1)
		}
	})
}

// genCycleForRapid mirrors genCycle without requiring *testing.T, for
// use inside a rapid property.
func genCycleForRapid(cycles, phaseLen int) RawRecording {
	const period = 0.01
	n := cycles * 2 * phaseLen

	rec := RawRecording{
		Time:   make([]float64, n),
		Vol:    make([]float64, n),
		Flow:   make([]float64, n),
		Period: period,
	}

	vol := 0.0
	for i := 0; i < n; i++ {
		phase := (i / phaseLen) % 2
		flow := -1.0
		if phase == 1 {
			flow = 1.0
		}
		vol += flow * period
		rec.Time[i] = float64(i) * period
		rec.Vol[i] = vol
		rec.Flow[i] = flow
	}
	return rec
}

package fvavg

import "math"

/*
Breath splitting, time-bin resampling and volume normalization
(spec.md §4.4).

The trimmed augmented sequence is a flat concatenation of exactly 2B
phases (inspiration, expiration, inspiration, expiration, ...). This
file first slices that sequence into one OriginalPhase per phase per
breath (cumulative boundaries computed once, per the §9 design note,
rather than repeated front-deletion), then resamples each phase onto
K+1 equally spaced time points, then rescales each breath's volume
excursion to the cross-breath average while tracking the total shift
so it can be added back after aggregation.
*/

// SplitBreaths slices a trimmed augmented sequence into B breaths,
// populating each breath's OrigInsp/OrigExp (time rebased to start at
// zero) and its TtInsp/TtExp/VtInsp/VtExp scalars.
func SplitBreaths(samples []Sample, phases []Phase, b int) []Breath {
	breaths := make([]Breath, b)

	pos := 0
	for i := 0; i < b; i++ {
		inspLen := phases[2*i].Length
		expLen := phases[2*i+1].Length

		insp := sliceOriginalPhase(samples, pos, inspLen)
		pos += inspLen
		exp := sliceOriginalPhase(samples, pos, expLen)
		pos += expLen

		breaths[i] = Breath{
			Index:    i,
			OrigInsp: insp,
			OrigExp:  exp,
			TtInsp:   insp.Time[len(insp.Time)-1],
			TtExp:    exp.Time[len(exp.Time)-1],
			VtInsp:   math.Abs(insp.Vol[len(insp.Vol)-1] - insp.Vol[0]),
			VtExp:    math.Abs(exp.Vol[len(exp.Vol)-1] - exp.Vol[0]),
		}
	}

	return breaths
}

func sliceOriginalPhase(samples []Sample, start, length int) OriginalPhase {
	t := make([]float64, length)
	v := make([]float64, length)
	f := make([]float64, length)

	t0 := samples[start].Time
	for j := 0; j < length; j++ {
		t[j] = samples[start+j].Time - t0
		v[j] = samples[start+j].Vol
		f[j] = samples[start+j].Flow
	}

	return OriginalPhase{Time: t, Vol: v, Flow: f}
}

// ResampleTimeBins builds the time-bin bundle for every breath
// (Insp_Time/Vol/Flow, Exp_Time/Vol/Flow at K+1 points each), then
// applies the volume-normalization pass of §4.4 steps 1-4, returning
// the mean shift to add back to aggregated volume means (§4.6) and
// the cross-breath average tidal volumes.
func ResampleTimeBins(breaths []Breath, intervals int) (meanShift, avgVtInsp, avgVtExp float64) {
	for i := range breaths {
		br := &breaths[i]

		insp := resamplePhaseByTime(br.OrigInsp, br.TtInsp, intervals)
		exp := resamplePhaseByTime(br.OrigExp, br.TtExp, intervals)

		br.NotNormalizedTimeBinInsp = copyBinnedPhase(insp)
		br.NotNormalizedTimeBinExp = copyBinnedPhase(exp)
		br.TimeBinInsp = insp
		br.TimeBinExp = exp
	}

	var sumVtInsp, sumVtExp float64
	for i := range breaths {
		sumVtInsp += breaths[i].VtInsp
		sumVtExp += breaths[i].VtExp
	}
	n := float64(len(breaths))
	avgVtInsp = sumVtInsp / n
	avgVtExp = sumVtExp / n

	var shiftSum float64
	for i := range breaths {
		br := &breaths[i]

		inspEnd := br.TimeBinInsp.Vol[intervals]
		for j := range br.TimeBinInsp.Vol {
			br.TimeBinInsp.Vol[j] -= inspEnd
		}
		shiftSum += inspEnd

		expStart := br.TimeBinExp.Vol[0]
		for j := range br.TimeBinExp.Vol {
			br.TimeBinExp.Vol[j] -= expStart
		}
		shiftSum += expStart
	}
	meanShift = shiftSum / (n * 2)

	for i := range breaths {
		br := &breaths[i]
		for j := range br.TimeBinInsp.Vol {
			br.TimeBinInsp.Vol[j] = (br.TimeBinInsp.Vol[j] / br.VtInsp) * avgVtInsp
		}
		for j := range br.TimeBinExp.Vol {
			br.TimeBinExp.Vol[j] = (br.TimeBinExp.Vol[j] / br.VtExp) * avgVtExp
		}
	}

	return meanShift, avgVtInsp, avgVtExp
}

func copyBinnedPhase(p BinnedPhase) BinnedPhase {
	return BinnedPhase{
		Time: append([]float64(nil), p.Time...),
		Vol:  append([]float64(nil), p.Vol...),
		Flow: append([]float64(nil), p.Flow...),
	}
}

// resamplePhaseByTime builds K+1 equally spaced time targets across
// [0, total] and linearly interpolates V and F at each. Bin 0 and bin
// K return the phase's exact first/last samples (§3, §8 property 5).
func resamplePhaseByTime(phase OriginalPhase, total float64, intervals int) BinnedPhase {
	out := BinnedPhase{
		Time: make([]float64, intervals+1),
		Vol:  make([]float64, intervals+1),
		Flow: make([]float64, intervals+1),
	}

	incr := total / float64(intervals)
	n := len(phase.Time)

	for j := 0; j <= intervals; j++ {
		target := incr * float64(j)
		out.Time[j] = target

		switch {
		case target == 0:
			out.Vol[j] = phase.Vol[0]
			out.Flow[j] = phase.Flow[0]
			continue
		case target == phase.Time[n-1]:
			out.Vol[j] = phase.Vol[n-1]
			out.Flow[j] = phase.Flow[n-1]
			continue
		}

		l := findBracketingIndexByTime(phase.Time, target)
		if l < 0 || l+1 >= n {
			// Defensive fallback (§4.4): snap to the phase's last sample.
			idx := l
			if idx < 0 {
				idx = n - 1
			}
			out.Vol[j] = phase.Vol[idx]
			out.Flow[j] = phase.Flow[idx]
			continue
		}

		t1, t2 := phase.Time[l], phase.Time[l+1]
		v1, v2 := phase.Vol[l], phase.Vol[l+1]
		f1, f2 := phase.Flow[l], phase.Flow[l+1]

		out.Vol[j] = v1 + (v2-v1)/(t2-t1)*(target-t1)
		out.Flow[j] = f1 + (f2-f1)/(t2-t1)*(target-t1)
	}

	return out
}

// findBracketingIndexByTime returns the first l such that
// phase.Time[l] < target < phase.Time[l+1], or -1 if none does.
func findBracketingIndexByTime(times []float64, target float64) int {
	for l := 0; l < len(times)-1; l++ {
		if times[l] < target && target < times[l+1] {
			return l
		}
	}
	return -1
}

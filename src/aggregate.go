package fvavg

import "math"

/*
Cross-breath aggregation (spec.md §4.6).

Both resampling schemes produce, per breath, a BinnedPhase with K+1
points for inspiration and K+1 for expiration. Aggregation collapses
the breath dimension: at each bin index, across all B breaths, take
the mean and the sample standard deviation (ddof=1, i.e. divide by
B-1). A single breath (B=1) has an undefined sample standard deviation
(0/0) and reports NaN, matching np.std(..., ddof=1) on a length-1
series.

The time-bin scheme's volume channel is mean-shifted back up by
MeanShift (§4.4) once aggregation is complete; the volume-bin scheme's
volume channel is never shifted; it is already expressed in absolute
bin-target values.
*/

// AggregateTimeBins collapses the per-breath time-bin data into one
// AggregatedLoop, adding meanShift back onto both volume channels.
func AggregateTimeBins(breaths []Breath, meanShift float64) AggregatedLoop {
	loop := aggregateBins(
		extract(breaths, func(b *Breath) BinnedPhase { return b.TimeBinInsp }),
		extract(breaths, func(b *Breath) BinnedPhase { return b.TimeBinExp }),
	)
	shiftVol(loop.InspVolMean, meanShift)
	shiftVol(loop.ExpVolMean, meanShift)
	return loop
}

// AggregateVolumeBins collapses the per-breath volume-bin data into
// one AggregatedLoop. No mean-shift correction applies here.
func AggregateVolumeBins(breaths []Breath) AggregatedLoop {
	return aggregateBins(
		extract(breaths, func(b *Breath) BinnedPhase { return b.VolumeBinInsp }),
		extract(breaths, func(b *Breath) BinnedPhase { return b.VolumeBinExp }),
	)
}

func extract(breaths []Breath, pick func(*Breath) BinnedPhase) []BinnedPhase {
	out := make([]BinnedPhase, len(breaths))
	for i := range breaths {
		out[i] = pick(&breaths[i])
	}
	return out
}

func shiftVol(vol []float64, meanShift float64) {
	for i := range vol {
		vol[i] += meanShift
	}
}

func aggregateBins(insp, exp []BinnedPhase) AggregatedLoop {
	var loop AggregatedLoop

	loop.InspVolMean, loop.InspVolSD = meanSDAcrossBreaths(insp, func(p BinnedPhase) []float64 { return p.Vol })
	loop.InspFlowMean, loop.InspFlowSD = meanSDAcrossBreaths(insp, func(p BinnedPhase) []float64 { return p.Flow })
	loop.ExpVolMean, loop.ExpVolSD = meanSDAcrossBreaths(exp, func(p BinnedPhase) []float64 { return p.Vol })
	loop.ExpFlowMean, loop.ExpFlowSD = meanSDAcrossBreaths(exp, func(p BinnedPhase) []float64 { return p.Flow })

	return loop
}

// meanSDAcrossBreaths computes, at each bin index, the mean and sample
// standard deviation of the selected channel across all breaths.
func meanSDAcrossBreaths(phases []BinnedPhase, pick func(BinnedPhase) []float64) (mean, sd []float64) {
	if len(phases) == 0 {
		return nil, nil
	}
	bins := len(pick(phases[0]))
	mean = make([]float64, bins)
	sd = make([]float64, bins)
	b := float64(len(phases))

	for j := 0; j < bins; j++ {
		var sum float64
		for i := range phases {
			sum += pick(phases[i])[j]
		}
		m := sum / b
		mean[j] = m

		if len(phases) < 2 {
			sd[j] = math.NaN()
			continue
		}
		var sqSum float64
		for i := range phases {
			d := pick(phases[i])[j] - m
			sqSum += d * d
		}
		sd[j] = math.Sqrt(sqSum / (b - 1))
	}

	return mean, sd
}

package fvavg

/*
Volume-bin resampling (spec.md §4.5).

Operates on the original, unnormalized per-breath phases (never the
time-bin-normalized ones). Each phase is split into K+1 equally spaced
*volume* targets — decreasing for inspiration, increasing for
expiration, by construction monotone since the zero-crossing detector
nudges phase boundaries by +/-0.001 (§4.2). Flow at each target volume
is found by locating the bracketing raw sample pair, solving for the
interpolating time, then interpolating flow linearly in time.
*/

// ResampleVolumeBins builds the volume-bin bundle for every breath
// from its original (unnormalized) phases.
func ResampleVolumeBins(breaths []Breath, intervals int) {
	for i := range breaths {
		br := &breaths[i]

		inspVol := volumeTargets(br.OrigInsp.Vol[0], br.VtInsp, intervals, true)
		expVol := volumeTargets(br.OrigExp.Vol[0], br.VtExp, intervals, false)

		inspFlow := interpolateFlowByVolume(br.OrigInsp, inspVol, true)
		expFlow := interpolateFlowByVolume(br.OrigExp, expVol, false)

		br.VolumeBinInsp = BinnedPhase{Vol: inspVol, Flow: inspFlow}
		br.VolumeBinExp = BinnedPhase{Vol: expVol, Flow: expFlow}
	}
}

// volumeTargets builds the K+1 equally spaced volume targets for one
// phase: V_start - j*Vt/K for inspiration (decreasing), V_start +
// j*Vt/K for expiration (increasing).
func volumeTargets(start, vt float64, intervals int, insp bool) []float64 {
	out := make([]float64, intervals+1)
	incr := vt / float64(intervals)
	for j := 0; j <= intervals; j++ {
		step := incr * float64(j)
		if insp {
			out[j] = start - step
		} else {
			out[j] = start + step
		}
	}
	return out
}

// interpolateFlowByVolume finds, for each target volume, the
// bracketing raw sample pair (by strict inequality, direction
// depending on phase), solves for the interpolating time, and
// interpolates flow linearly in time. Exact endpoint/interior matches
// bypass interpolation.
func interpolateFlowByVolume(phase OriginalPhase, targets []float64, insp bool) []float64 {
	vol := phase.Vol
	tme := phase.Time
	flow := phase.Flow
	n := len(vol)

	out := make([]float64, len(targets))

	for j, target := range targets {
		switch {
		case target == vol[0]:
			out[j] = flow[0]
			continue
		case target == vol[n-1]:
			out[j] = flow[n-1]
			continue
		}

		matched := false
		for l := 0; l < n; l++ {
			if vol[l] == target {
				out[j] = flow[l]
				matched = true
				break
			}
			if l+1 >= n {
				break
			}
			bracketed := false
			if insp {
				bracketed = vol[l] > target && target > vol[l+1]
			} else {
				bracketed = vol[l] < target && target < vol[l+1]
			}
			if bracketed {
				t1, t2 := tme[l], tme[l+1]
				v1, v2 := vol[l], vol[l+1]
				f1, f2 := flow[l], flow[l+1]

				tStar := t1 + (target-v1)/((v2-v1)/(t2-t1))
				out[j] = f1 + (f2-f1)/(t2-t1)*(tStar-t1)
				matched = true
				break
			}
		}
		if !matched {
			// Defensive fallback (§4.4/§7 InterpolationBoundary): snap
			// to the phase's last sample when floating error puts a
			// target just outside the phase's volume range.
			out[j] = flow[n-1]
		}
	}

	return out
}

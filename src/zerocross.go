package fvavg

/*
Zero-crossing detection and interpolation (spec.md §4.2).

Scan the raw flow series for sign changes. A candidate crossing at
index i is validated when:

  - Forward check: all 30 samples F[i+2..i+31] carry the new sign.
  - Backward check: the mean of F[i-60..i-41] (20 samples, 41 steps
    back) has the opposite sign to the new sign. Missing terms
    (index underflow) contribute 0 to the sum but the divisor stays 20.

On validation, three points replace the single sample pair: the last
pre-crossing sample, then two synthetic points at the interpolated
zero-crossing time (F=0, V nudged +/-0.001 off the nearer extremum).
This nudge forces every phase to be strictly monotone in V at its
boundary, which the volume-bin resampler (§4.5) depends on.

The forward window is 30 samples, the backward window averages 20
samples starting 41 steps back (through 60 steps back) — these widths
are hand-tuned and preserved exactly, including the case where the
30-sample forward window runs past the end of the recording: such a
candidate is treated as unvalidated rather than specially flagged,
matching the original implementation's behavior of falling through to
"standard procedure" the moment an index it needs is out of range.
*/

const (
	forwardWindow       = 30
	backwardWindowStart = 41
	backwardWindowEnd   = 60
	backwardWindowCount = 20
	crossingNudge       = 0.001
)

// DetectZeroCrossings scans a raw recording and returns the augmented
// sample sequence plus the list of phase lengths (§3, §4.2): one entry
// per phase closed by a validated crossing. The trailing phase after
// the last validated crossing is not listed.
func DetectZeroCrossings(rec RawRecording) ([]Sample, []Phase) {
	n := len(rec.Flow)

	var samples []Sample
	var phases []Phase
	phaseLen := 0
	// phaseInsp tracks the sign of the *current* (still open) phase;
	// nil until the first sample is seen.
	var phaseInsp *bool

	noteSample := func(f float64) {
		insp := f < 0
		if phaseInsp == nil {
			phaseInsp = &insp
		}
	}

	closePhase := func() {
		if phaseLen > 0 {
			phases = append(phases, Phase{Length: phaseLen, Insp: *phaseInsp})
		}
	}

	for i := 0; i < n; i++ {
		if i == n-1 {
			// Last sample is always appended verbatim.
			samples = append(samples, Sample{Time: rec.Time[i], Vol: rec.Vol[i], Flow: rec.Flow[i]})
			noteSample(rec.Flow[i])
			phaseLen++
			continue
		}

		f0, f1 := rec.Flow[i], rec.Flow[i+1]
		negToPos := f0 < 0 && f1 > 0
		posToNeg := f0 > 0 && f1 < 0

		if negToPos || posToNeg {
			if validateCrossing(rec.Flow, i, negToPos) {
				// The pre-crossing sample and the first of the two
				// synthetic zero points close out the old phase; the
				// second synthetic point opens the new one. This split
				// (rather than both synthetic points in one phase) is
				// what the original implementation's phase-index
				// bookkeeping does, and volume-bin resampling (§4.5)
				// relies on each phase's own boundary sample being
				// exactly at the nudged extremum.
				samples = append(samples, Sample{Time: rec.Time[i], Vol: rec.Vol[i], Flow: f0})
				noteSample(f0)
				phaseLen++

				t1, t2 := rec.Time[i], rec.Time[i+1]
				v1, v2 := rec.Vol[i], rec.Vol[i+1]
				tCross := t1 + ((0 - f0) / ((f1 - f0) / (t2 - t1)))

				var vCross float64
				if negToPos {
					vCross = minFloat(v1, v2) - crossingNudge
				} else {
					vCross = maxFloat(v1, v2) + crossingNudge
				}

				synth := Sample{Time: tCross, Vol: vCross, Flow: 0}

				samples = append(samples, synth)
				phaseLen++
				closePhase()

				samples = append(samples, synth)
				newInsp := posToNeg
				phaseInsp = &newInsp
				phaseLen = 1
				continue
			}
			// Unvalidated: standard procedure, same as a same-sign step.
			samples = append(samples, Sample{Time: rec.Time[i], Vol: rec.Vol[i], Flow: f0})
			noteSample(f0)
			phaseLen++
			continue
		}

		samples = append(samples, Sample{Time: rec.Time[i], Vol: rec.Vol[i], Flow: f0})
		noteSample(f0)
		phaseLen++
	}

	// The final phase is still open (no validated crossing closed it),
	// so it gets no phase-length entry; the trimmer relies on this.

	return samples, phases
}

// validateCrossing applies the forward persistence check and the
// backward mean-sign check at candidate index i. negToPos selects
// which sign the forward window must persist in and which sign the
// backward mean must have.
func validateCrossing(flow []float64, i int, negToPos bool) bool {
	n := len(flow)

	// Forward check: all 30 forward samples must exist and carry the
	// new sign. An out-of-range forward window means "not validated"
	// (see the package doc comment on §9's open question).
	if i+1+forwardWindow >= n {
		return false
	}
	for j := 1; j <= forwardWindow; j++ {
		f := flow[i+1+j]
		if negToPos && f <= 0 {
			return false
		}
		if !negToPos && f >= 0 {
			return false
		}
	}

	// Backward check: mean of 20 samples, 41..60 steps back. Missing
	// terms (index < 0) contribute 0 but the divisor stays 20.
	var sum float64
	for j := backwardWindowStart; j <= backwardWindowEnd; j++ {
		idx := i - j
		if idx >= 0 {
			sum += flow[idx]
		}
	}
	backTrack := sum / backwardWindowCount

	if negToPos {
		return backTrack < 0
	}
	return backTrack > 0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

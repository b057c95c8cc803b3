package fvavg

import "fmt"

/*
Trimming to whole-breath boundaries (spec.md §4.3).

The augmented sequence rarely starts or ends exactly on a breath
boundary: the recording usually begins mid-inspiration or mid-
expiration, and ends the same way. Trim leading samples until the
head sits at a zero-crossing pair whose following phase is
inspiration, and trailing samples until the tail sits just past a
zero-crossing pair whose preceding phase was expiration. Track how
many phase-length entries that walk consumed so the phase-length list
stays in sync with the trimmed sample sequence.
*/

// TrimToWholeBreaths drops leading/trailing partial breaths from an
// augmented sequence, returning the trimmed samples, the trimmed
// phase-length list, and the number of complete breaths B.
func TrimToWholeBreaths(samples []Sample, phases []Phase) ([]Sample, []Phase, int, error) {
	if len(phases) == 0 {
		return nil, nil, 0, &NoFullBreathError{Reason: "no zero-crossings detected"}
	}

	start := 0
	counterStart := 1.0 // the first phase-length entry is always dropped
	found := false
	for start+2 < len(samples) {
		if samples[start].Flow == 0 && samples[start+2].Flow < 0 {
			start++ // drop the crossing-pair's first point too
			found = true
			break
		}
		if samples[start].Flow == 0 && samples[start+2].Flow > 0 {
			counterStart += 0.5
		}
		start++
	}
	if !found {
		return nil, nil, 0, &NoFullBreathError{Reason: "no leading inspiration-start crossing found"}
	}

	end := len(samples) // exclusive upper bound, shrinks as we trim
	counterEnd := 0.0
	foundEnd := false
	for end-3 >= start {
		if samples[end-3].Flow == 0 && samples[end-1].Flow < 0 {
			end -= 3
			foundEnd = true
			break
		}
		if samples[end-3].Flow == 0 && samples[end-1].Flow > 0 {
			counterEnd += 0.5
		}
		end--
	}
	if !foundEnd {
		return nil, nil, 0, &NoFullBreathError{Reason: "no trailing expiration-end crossing found"}
	}

	trimmedSamples := append([]Sample(nil), samples[start:end]...)

	dropLeading := 1
	if counterStart >= 2 {
		dropLeading = 2
	}
	dropTrailing := 0
	if counterEnd == 1 {
		dropTrailing = 1
	}

	if dropLeading+dropTrailing > len(phases) {
		return nil, nil, 0, &NoFullBreathError{Reason: "phase list exhausted while trimming"}
	}
	trimmedPhases := append([]Phase(nil), phases[dropLeading:len(phases)-dropTrailing]...)

	if len(trimmedPhases)%2 != 0 {
		return nil, nil, 0, &NoFullBreathError{
			Reason: fmt.Sprintf("odd number of phases after trim: %d", len(trimmedPhases)),
		}
	}

	b := len(trimmedPhases) / 2
	if b == 0 {
		return nil, nil, 0, &NoFullBreathError{Reason: "zero complete breaths after trim"}
	}

	return trimmedSamples, trimmedPhases, b, nil
}

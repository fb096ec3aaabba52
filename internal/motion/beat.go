package motion

import "math"

// attackFrac is the fraction of a beat spent on the rising edge of the pulse.
const attackFrac = 0.15

// PulseShape maps a beat phase in [0, 1) to pulse intensity: a linear attack
// from 0 to 1 across the first 15% of the beat, then a quadratic decay
// (1-x)^2 across the remainder, reaching 0 as the next beat arrives.
func PulseShape(phase float64) float64 {
	phase = phase - math.Floor(phase)
	if phase < attackFrac {
		return phase / attackFrac
	}
	x := (phase - attackFrac) / (1 - attackFrac)
	return (1 - x) * (1 - x)
}

// BeatPulse returns the pulse intensity at elapsed seconds into a steady
// beat at the given BPM. Non-positive BPM yields no pulse. Callers that
// change tempo mid-flight should accumulate beat phase themselves and use
// [PulseShape] so the pulse never jumps backwards.
func BeatPulse(elapsed, bpm float64) float64 {
	if bpm <= 0 {
		return 0
	}
	beats := elapsed * bpm / 60
	return PulseShape(beats - math.Floor(beats))
}

package tune

import (
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

// Ornstein-Uhlenbeck constants for the bob/sway walk. Theta is the
// mean-reversion rate per second; sigma and bound scale with the amount
// knobs so zero amount pins the offset at zero.
const (
	ouTheta   = 1.8
	bobSigma  = 22.0
	bobBound  = 26.0
	swaySigma = 30.0
	swayBound = 34.0
)

// Wander holds the mean-reverting offsets nudging the figure off its spot:
// bob moves the pelvis vertically, sway horizontally.
type Wander struct {
	rng  motion.Rand
	bob  float64
	sway float64
}

// NewWander returns a wander at rest.
func NewWander(rng motion.Rand) *Wander {
	return &Wander{rng: rng}
}

// Advance integrates both walks over dt seconds. Each step pulls the offset
// toward zero at theta and diffuses it with gaussian noise scaled by the
// amount knob; the result is clamped to an amount-scaled bound.
func (w *Wander) Advance(dt, bobAmt, swayAmt float64) {
	if dt <= 0 {
		return
	}
	w.bob = ouStep(w.rng, w.bob, dt, motion.Clamp01(bobAmt), bobSigma, bobBound)
	w.sway = ouStep(w.rng, w.sway, dt, motion.Clamp01(swayAmt), swaySigma, swayBound)
}

// Offsets returns the current bob and sway displacements in pixels.
func (w *Wander) Offsets() (bob, sway float64) {
	return w.bob, w.sway
}

// Reset snaps both walks back to zero.
func (w *Wander) Reset() {
	w.bob = 0
	w.sway = 0
}

func ouStep(rng motion.Rand, x, dt, amount, sigma, bound float64) float64 {
	x += ouTheta * (0 - x) * dt
	x += sigma * amount * rng.NormFloat64() * math.Sqrt(dt)
	limit := bound * amount
	return motion.Clamp(x, -limit, limit)
}

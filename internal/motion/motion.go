package motion

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return Clamp(t, 0, 1)
}

// Lerp linearly interpolates from a to b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Wrap360 normalizes an angle in degrees to [0, 360).
func Wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngleDelta returns the signed shortest rotation from a to b in degrees,
// in the half-open interval (-180, 180].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// LerpAngle interpolates between two angles along the shorter arc.
// Blending 350 toward 10 at t=0.5 yields 0, not 180.
func LerpAngle(a, b, t float64) float64 {
	return a + AngleDelta(a, b)*t
}

// EaseInOutCubic maps t in [0,1] onto a symmetric S-curve: cubic acceleration
// through the first half, cubic deceleration through the second. Fixed points
// at 0, 0.5, and 1.
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// HexLerp blends two hex colors ("#rrggbb") component-wise through RGB space
// and returns the blend as a hex string. Unparseable inputs fall back to the
// other operand, or black if both fail.
func HexLerp(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	switch {
	case errA != nil && errB != nil:
		return "#000000"
	case errA != nil:
		return cb.Hex()
	case errB != nil:
		return ca.Hex()
	}
	t = Clamp01(t)
	blend := colorful.Color{
		R: Lerp(ca.R, cb.R, t),
		G: Lerp(ca.G, cb.G, t),
		B: Lerp(ca.B, cb.B, t),
	}
	return blend.Clamped().Hex()
}

// Package motion provides the pure math used by the dancer: interpolation,
// easing, angle arithmetic, color blending, splines, and the beat pulse curve.
//
// Everything in this package is deterministic given its inputs. Randomness is
// injected through the [Rand] interface so callers (and tests) control seeding;
// [NewSeeded] wraps a PCG source from math/rand/v2.
//
// Angles are degrees throughout. [LerpAngle] always travels the shorter arc,
// so blending 350° toward 10° passes through 0° rather than sweeping backwards
// across 180°.
package motion

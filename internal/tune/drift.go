package tune

import (
	"github.com/desertthunder/bop/internal/motion"
)

// DriftPhase names the four legs of a drift cycle.
type DriftPhase int

const (
	// DriftOut eases the whitelist from home toward the sampled away set.
	DriftOut DriftPhase = iota
	// DriftAway holds at the away set.
	DriftAway
	// DriftBack eases home.
	DriftBack
	// DriftHome rests at home; manual writes stick during this leg.
	DriftHome
)

func (p DriftPhase) String() string {
	switch p {
	case DriftOut:
		return "going-out"
	case DriftAway:
		return "away"
	case DriftBack:
		return "coming-back"
	case DriftHome:
		return "home"
	default:
		return "unknown"
	}
}

// Phase length fractions of one drift period.
var driftFracs = [4]float64{0.18, 0.22, 0.18, 0.42}

// Drift walks every whitelisted parameter away from its default and back in
// a shared four-phase cycle. Home is always the registry default, not the
// value at start, so a stop restores a clean slate. Not safe for concurrent
// use; the engine serializes access.
type Drift struct {
	params *Params
	rng    motion.Rand

	active  bool
	phase   DriftPhase
	entered float64
	durs    [4]float64
	away    map[string]float64
}

// NewDrift returns an inactive drift over the given parameter set.
func NewDrift(p *Params, rng motion.Rand) *Drift {
	return &Drift{params: p, rng: rng}
}

// Start begins a cycle at the going-out leg. Starting an active drift is a
// no-op.
func (d *Drift) Start(now float64) {
	if d.active {
		return
	}
	d.active = true
	d.phase = DriftOut
	d.entered = now
	d.sampleCycle()
}

// Stop halts the drift and restores every whitelisted parameter to exactly
// its registry default.
func (d *Drift) Stop() {
	if !d.active {
		return
	}
	d.active = false
	for _, f := range fields {
		if f.Drift {
			f.set(d.params, f.Default)
		}
	}
	d.away = nil
}

// Active reports whether a cycle is running.
func (d *Drift) Active() bool { return d.active }

// Phase returns the current leg of the cycle.
func (d *Drift) Phase() DriftPhase { return d.phase }

// Advance steps the cycle to the simulation clock and writes the eased
// values. The home leg writes nothing, so slider changes made there hold
// until the next going-out leg.
func (d *Drift) Advance(now float64) {
	if !d.active {
		return
	}

	for range 8 {
		elapsed := now - d.entered
		if elapsed < d.durs[d.phase] {
			break
		}
		d.entered += d.durs[d.phase]
		d.phase = (d.phase + 1) % 4
		switch d.phase {
		case DriftHome:
			// Land exactly on the defaults; the home leg itself never writes.
			d.write(0)
		case DriftOut:
			// New cycle: fresh away targets, fresh pacing.
			d.sampleCycle()
		}
	}

	t := motion.Clamp01((now - d.entered) / d.durs[d.phase])
	switch d.phase {
	case DriftOut:
		d.write(motion.EaseInOutCubic(t))
	case DriftAway:
		d.write(1)
	case DriftBack:
		d.write(1 - motion.EaseInOutCubic(t))
	case DriftHome:
		// Rest.
	}
}

// write moves each whitelisted parameter to lerp(default, away, t).
func (d *Drift) write(t float64) {
	for _, f := range fields {
		if !f.Drift {
			continue
		}
		v := motion.Lerp(f.Default, d.away[f.Name], t)
		f.set(d.params, motion.Clamp(v, f.Min, f.Max))
	}
}

// sampleCycle draws new away targets and phase durations from the current
// drift-rate and drift-amount knobs.
func (d *Drift) sampleCycle() {
	rate := motion.Clamp01(d.params.DriftRate)
	period := motion.Lerp(40, 9, rate)
	for i, frac := range driftFracs {
		d.durs[i] = frac * period
	}

	amount := motion.Clamp01(d.params.DriftAmt)
	d.away = make(map[string]float64, len(fields))
	for _, f := range fields {
		if !f.Drift {
			continue
		}
		span := (f.Max - f.Min) / 2 * amount
		d.away[f.Name] = motion.Clamp(f.Default+motion.Spread(d.rng)*span, f.Min, f.Max)
	}
}

package tune

import (
	"fmt"
	"math"
	"sort"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/shared"
)

type drivePhase int

const (
	driveHold drivePhase = iota
	driveMove
)

// lane is one parameter's private hold/move cycle.
type lane struct {
	field   Field
	phase   drivePhase
	from    float64
	target  float64
	entered float64
	dur     float64
	primed  bool
}

// AutoDrive cycles each enabled parameter through hold-then-ease-to-target
// rounds. Targets come from the parameter's weighted regimes; the shared
// auto-rate knob compresses or stretches every lane's timing. Not safe for
// concurrent use; the engine serializes access.
type AutoDrive struct {
	params *Params
	rng    motion.Rand
	lanes  map[string]*lane
}

// NewAutoDrive returns an idle auto-drive over the given parameter set.
func NewAutoDrive(p *Params, rng motion.Rand) *AutoDrive {
	return &AutoDrive{params: p, rng: rng, lanes: make(map[string]*lane)}
}

// Enable puts a parameter under auto-drive. Enabling an enabled parameter
// is a no-op.
func (a *AutoDrive) Enable(name string) error {
	f, ok := FieldByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownParam, name)
	}
	if !f.Drivable() {
		return fmt.Errorf("%w: %s has no drive regimes", shared.ErrInvalidInput, name)
	}
	if _, on := a.lanes[name]; !on {
		a.lanes[name] = &lane{field: f}
	}
	return nil
}

// Disable releases a parameter, leaving its current value in place.
func (a *AutoDrive) Disable(name string) {
	delete(a.lanes, name)
}

// EnableAll puts every drivable parameter under auto-drive.
func (a *AutoDrive) EnableAll() {
	for _, f := range fields {
		if f.Drivable() {
			_ = a.Enable(f.Name)
		}
	}
}

// DisableAll releases every parameter.
func (a *AutoDrive) DisableAll() {
	clear(a.lanes)
}

// Enabled returns the names under auto-drive, sorted.
func (a *AutoDrive) Enabled() []string {
	names := make([]string, 0, len(a.lanes))
	for name := range a.lanes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active reports whether any lane is enabled.
func (a *AutoDrive) Active() bool {
	return len(a.lanes) > 0
}

// Advance steps every lane to the simulation clock (seconds). Lanes run in
// name order so seeded runs consume random draws identically.
func (a *AutoDrive) Advance(now float64) {
	rate := motion.Clamp(a.params.AutoRate, 0.2, 3)
	for _, name := range a.Enabled() {
		a.advanceLane(a.lanes[name], now, rate)
	}
}

func (a *AutoDrive) advanceLane(l *lane, now, rate float64) {
	if !l.primed {
		// Fresh lanes hold their current value for one sampled hold first,
		// so enabling auto-drive never snaps the picture.
		r := a.pickRegime(l.field)
		l.phase = driveHold
		l.entered = now
		l.dur = motion.Uniform(a.rng, r.HoldMin, r.HoldMax) / rate
		l.primed = true
		return
	}

	elapsed := now - l.entered
	if elapsed < l.dur {
		if l.phase == driveMove {
			t := motion.EaseInOutCubic(elapsed / l.dur)
			v := motion.Lerp(l.from, l.target, t)
			l.field.set(a.params, motion.Clamp(v, l.field.Min, l.field.Max))
		}
		return
	}

	l.entered += l.dur
	switch l.phase {
	case driveHold:
		r := a.pickRegime(l.field)
		l.from = l.field.get(a.params)
		l.target = a.sampleTarget(l.field, r)
		l.dur = motion.Uniform(a.rng, r.MoveMin, r.MoveMax) / rate
		l.phase = driveMove
	case driveMove:
		l.field.set(a.params, l.target)
		r := a.pickRegime(l.field)
		l.dur = motion.Uniform(a.rng, r.HoldMin, r.HoldMax) / rate
		l.phase = driveHold
	}
}

// pickRegime samples one of the field's regimes by weight.
func (a *AutoDrive) pickRegime(f Field) Regime {
	total := 0.0
	for _, r := range f.Regimes {
		total += r.Weight
	}
	roll := a.rng.Float64() * total
	for _, r := range f.Regimes {
		roll -= r.Weight
		if roll < 0 {
			return r
		}
	}
	return f.Regimes[len(f.Regimes)-1]
}

// sampleTarget draws a target inside the regime's window and snaps it to
// the field's step so driven values land on the same grid the UI uses.
func (a *AutoDrive) sampleTarget(f Field, r Regime) float64 {
	frac := motion.Uniform(a.rng, r.Lo, r.Hi)
	v := motion.Lerp(f.Min, f.Max, frac)
	if f.Step > 0 {
		v = f.Min + math.Round((v-f.Min)/f.Step)*f.Step
	}
	return motion.Clamp(v, f.Min, f.Max)
}

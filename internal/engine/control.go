package engine

import (
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

// SetBPM retargets the tempo spring. The value is clamped to the parameter
// range; the audible beat glides to it over the next ticks.
func (d *Dancer) SetBPM(bpm float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.p.Set("bpm", bpm)
}

// BPM returns the spring-smoothed tempo currently driving the beat.
func (d *Dancer) BPM() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bpm
}

// SetParam writes a tunable parameter by registry name.
func (d *Dancer) SetParam(name string, v float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.p.Set(name, v)
}

// Param reads a tunable parameter by registry name.
func (d *Dancer) Param(name string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.p.Get(name)
}

// Params returns a snapshot of every parameter.
func (d *Dancer) Params() map[string]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.p.Snapshot()
}

// Reset restores every parameter to its default and cancels all in-flight
// modulation: drift ends, auto-drive disengages, the wander walk snaps home.
func (d *Dancer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drift.Stop()
	d.auto.DisableAll()
	d.wander.Reset()
	d.p.Reset()
	d.bpm = d.p.BPM
	d.bpmVel = 0
}

// Still freezes the dancer on a freshly noised random pose. The frame loop
// keeps running but skips simulation until Start unfreezes it; a stopped
// dancer just parks the pose for the next Snapshot.
func (d *Dancer) Still() {
	d.mu.Lock()
	defer d.mu.Unlock()

	pose := d.seq.Still(d.p.PoseJitter)
	d.frozen = true

	u := d.compose(pose, 0)
	d.last = u
	d.publish(u)
}

// Frozen reports whether the dancer is parked on a still pose.
func (d *Dancer) Frozen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frozen
}

// RefreshArtwork forces a cover lookup for a random track, skipping the
// per-frame odds. A no-op without both a track source and an artwork loader.
func (d *Dancer) RefreshArtwork() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollArtwork(true)
}

// StartDrift begins the slow home/away excursion over the drift-whitelisted
// parameters.
func (d *Dancer) StartDrift() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drift.Start(d.clock)
}

// StopDrift ends the excursion and restores every drifted parameter to its
// default immediately.
func (d *Dancer) StopDrift() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drift.Stop()
}

// Drifting reports whether the drift cycle is active.
func (d *Dancer) Drifting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drift.Active()
}

// EnableAutoDrive turns autonomous parameter animation on for the named
// parameters, or for every drivable one when called with no names.
func (d *Dancer) EnableAutoDrive(names ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		d.auto.EnableAll()
		return nil
	}
	for _, name := range names {
		if err := d.auto.Enable(name); err != nil {
			return err
		}
	}
	return nil
}

// DisableAutoDrive turns auto-drive off for the named parameters, or for all
// of them when called with no names.
func (d *Dancer) DisableAutoDrive(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		d.auto.DisableAll()
		return
	}
	for _, name := range names {
		d.auto.Disable(name)
	}
}

// AutoDriven returns the names currently under auto-drive.
func (d *Dancer) AutoDriven() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.auto.Enabled()
}

// Subscribe registers a frame listener. The returned cancel removes it and
// closes the channel; sends never block, so a slow listener sees the newest
// frame it managed to keep.
func (d *Dancer) Subscribe() (<-chan Update, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan Update, 1)
	d.subs = append(d.subs, ch)

	cancel := func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, sub := range d.subs {
			if sub == ch {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Snapshot renders the current state without advancing the simulation. Wave
// noise still draws from the shared random source, so repeated snapshots of
// a paused dancer differ in texture but not in pose.
func (d *Dancer) Snapshot() Update {
	d.mu.Lock()
	defer d.mu.Unlock()

	pulse := 0.0
	if !d.frozen {
		pulse = motion.PulseShape(d.beats - math.Floor(d.beats))
	}
	return d.compose(d.seq.Pose(), pulse)
}

// Stats reports the simulation counters.
func (d *Dancer) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Clock:    d.clock,
		Beats:    d.beats,
		BPM:      d.bpm,
		Steps:    d.seq.Steps(),
		Pose:     d.seq.PoseName(),
		State:    d.seq.State().String(),
		Stages:   len(d.stageOrder),
		Running:  d.running,
		Frozen:   d.frozen,
		Drifting: d.drift.Active(),
	}
}

package choreo

import (
	"math"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/rig"
)

// State identifies what the sequencer is doing with the current pose.
type State int

const (
	// StateHold freezes on the arrived pose until the hold timer runs out.
	StateHold State = iota
	// StateTransition eases from the previous pose to the next one.
	StateTransition
)

func (s State) String() string {
	switch s {
	case StateHold:
		return "hold"
	case StateTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// Timing are the knobs the sequencer reads on every advance. The engine
// fills them from the live parameter set.
type Timing struct {
	// HoldBase and TransBase are the nominal state lengths in seconds.
	HoldBase  float64
	TransBase float64
	// DurJitter in [0,1] widens the duration distributions.
	DurJitter float64
	// PoseJitter in [0,1] scales the per-angle noise on each new target.
	PoseJitter float64
	// Tempo multiplies the sequencer clock; 1.0 at 120 BPM.
	Tempo float64
}

const (
	maxJitterDeg  = 38.0
	maxJitterRoot = 12.0
	minStateSec   = 0.08
	minTempo      = 0.25
	maxTempo      = 3.0
)

// Sequencer walks a library's pose cycle, alternating holds and eased
// transitions on its own tempo-scaled clock. Not safe for concurrent use;
// the engine serializes access.
type Sequencer struct {
	lib Library
	rng motion.Rand

	clock   float64
	state   State
	cursor  int
	from    rig.Pose
	to      rig.Pose
	entered float64
	dur     float64
	steps   int
}

// NewSequencer starts a sequencer holding the first pose of the cycle.
func NewSequencer(lib Library, rng motion.Rand) *Sequencer {
	s := &Sequencer{lib: lib, rng: rng}
	first := lib.PoseAt(0)
	s.from = first
	s.to = first
	s.state = StateHold
	s.dur = holdDuration(2.0, 0.3, rng)
	return s
}

// Advance moves the clock forward by dt seconds of wall time and returns the
// pose for the new instant. Timing knobs apply from this call onward; already
// running states keep the duration they were dealt.
func (s *Sequencer) Advance(dt float64, tm Timing) rig.Pose {
	tempo := motion.Clamp(tm.Tempo, minTempo, maxTempo)
	s.clock += dt * tempo

	// A long wall-clock gap may complete several states back to back.
	for range 8 {
		elapsed := s.clock - s.entered
		if elapsed < s.dur {
			break
		}
		s.entered += s.dur
		if s.state == StateHold {
			s.beginTransition(tm)
		} else {
			s.beginHold(tm)
		}
	}

	return s.Pose()
}

// Pose returns the pose at the current clock without advancing.
func (s *Sequencer) Pose() rig.Pose {
	if s.state == StateHold {
		return s.to
	}
	t := motion.Clamp01((s.clock - s.entered) / s.dur)
	return rig.Blend(s.from, s.to, motion.EaseInOutCubic(t))
}

func (s *Sequencer) beginTransition(tm Timing) {
	s.from = s.to
	s.cursor++
	s.to = noisyPose(s.lib.PoseAt(s.cursor), tm.PoseJitter, s.rng)
	s.dur = transDuration(tm.TransBase, tm.DurJitter, s.rng)
	s.state = StateTransition
}

func (s *Sequencer) beginHold(tm Timing) {
	s.from = s.to
	s.dur = holdDuration(tm.HoldBase, tm.DurJitter, s.rng)
	s.state = StateHold
	s.steps++
}

// Still snaps the sequencer onto a random library pose, noised with at least
// a quarter of full jitter so repeated stills differ. The sequencer stays in
// a hold; callers freeze the clock to keep it there.
func (s *Sequencer) Still(strength float64) rig.Pose {
	pick := s.rng.IntN(len(s.lib.Poses))
	pose := noisyPose(s.lib.Poses[pick].Pose, max(strength, 0.25), s.rng)
	s.from = pose
	s.to = pose
	s.state = StateHold
	s.entered = s.clock
	s.dur = 1e9
	return pose
}

// State reports whether the sequencer is holding or transitioning.
func (s *Sequencer) State() State { return s.state }

// Cursor returns the current sequence position (monotonic, not wrapped).
func (s *Sequencer) Cursor() int { return s.cursor }

// Steps returns how many transitions have completed.
func (s *Sequencer) Steps() int { return s.steps }

// PoseName returns the library name of the pose currently targeted.
func (s *Sequencer) PoseName() string { return s.lib.NameAt(s.cursor) }

// noisyPose perturbs every angle with independent uniform noise scaled by
// the field's jitter weight, and the root offset at its reduced weight.
func noisyPose(p rig.Pose, strength float64, rng motion.Rand) rig.Pose {
	strength = motion.Clamp01(strength)
	if strength == 0 {
		return p
	}
	out := p
	for _, wa := range out.Angles() {
		*wa.Deg += motion.Spread(rng) * maxJitterDeg * strength * wa.Weight
	}
	out.Root += motion.Spread(rng) * maxJitterRoot * strength * rig.RootJitterWeight
	return out
}

// holdDuration samples base*(0.3 + 0.7*u^k). At low strength the exponent
// is large, so u^k collapses toward zero and holds cluster near the short
// floor; as strength rises the exponent falls and draws spread across the
// full range up to base.
func holdDuration(base, strength float64, rng motion.Rand) float64 {
	k := 2.2 - 1.6*motion.Clamp01(strength)
	u := rng.Float64()
	d := base * (0.3 + 0.7*math.Pow(u, k))
	return max(d, minStateSec)
}

// transDuration samples base*(1 - w + 2wu), a symmetric window around base
// that widens with strength.
func transDuration(base, strength float64, rng motion.Rand) float64 {
	w := 0.15 + 0.55*motion.Clamp01(strength)
	u := rng.Float64()
	d := base * (1 - w + 2*w*u)
	return max(d, minStateSec)
}

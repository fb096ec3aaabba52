package rig

import "github.com/desertthunder/bop/internal/motion"

// Pose is one body configuration: twelve joint angles in degrees plus a
// vertical root offset in pixels (positive lifts the figure).
type Pose struct {
	Spine    float64
	HeadTilt float64
	Root     float64

	LUpper float64
	LFore  float64
	LHand  float64
	RUpper float64
	RFore  float64
	RHand  float64

	LThigh float64
	LShin  float64
	RThigh float64
	RShin  float64
}

// Blend interpolates between two poses. Angles travel their shorter arc,
// the root offset linearly. t outside [0,1] extrapolates.
func Blend(a, b Pose, t float64) Pose {
	return Pose{
		Spine:    motion.LerpAngle(a.Spine, b.Spine, t),
		HeadTilt: motion.LerpAngle(a.HeadTilt, b.HeadTilt, t),
		Root:     motion.Lerp(a.Root, b.Root, t),
		LUpper:   motion.LerpAngle(a.LUpper, b.LUpper, t),
		LFore:    motion.LerpAngle(a.LFore, b.LFore, t),
		LHand:    motion.LerpAngle(a.LHand, b.LHand, t),
		RUpper:   motion.LerpAngle(a.RUpper, b.RUpper, t),
		RFore:    motion.LerpAngle(a.RFore, b.RFore, t),
		RHand:    motion.LerpAngle(a.RHand, b.RHand, t),
		LThigh:   motion.LerpAngle(a.LThigh, b.LThigh, t),
		LShin:    motion.LerpAngle(a.LShin, b.LShin, t),
		RThigh:   motion.LerpAngle(a.RThigh, b.RThigh, t),
		RShin:    motion.LerpAngle(a.RShin, b.RShin, t),
	}
}

// Angles returns pointers to every angle field paired with its jitter weight.
// The sequencer's noise pass perturbs each angle independently: arms at full
// weight, legs at half, spine at half, head tilt reduced.
func (p *Pose) Angles() []WeightedAngle {
	return []WeightedAngle{
		{&p.Spine, 0.5},
		{&p.HeadTilt, 0.35},
		{&p.LUpper, 1}, {&p.LFore, 1}, {&p.LHand, 1},
		{&p.RUpper, 1}, {&p.RFore, 1}, {&p.RHand, 1},
		{&p.LThigh, 0.5}, {&p.LShin, 0.5},
		{&p.RThigh, 0.5}, {&p.RShin, 0.5},
	}
}

// WeightedAngle pairs an angle field with the weight its jitter is scaled by.
type WeightedAngle struct {
	Deg    *float64
	Weight float64
}

// RootJitterWeight scales root-offset jitter relative to angle jitter.
const RootJitterWeight = 0.25

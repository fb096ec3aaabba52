package rig

import (
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

// Base bone lengths in pixels at scale 1.
const (
	boneTrunk      = 52.0
	boneNeck       = 18.0
	boneShoulder   = 20.0 // half span, neck to shoulder socket
	boneUpperArm   = 30.0
	boneForearm    = 26.0
	boneHand       = 10.0
	boneHip        = 14.0 // half span, pelvis to hip socket
	boneThigh      = 34.0
	boneShin       = 32.0
	headRadiusBase = 14.0
)

// Skeleton carries the rig's bone lengths. All lengths scale uniformly.
type Skeleton struct {
	Trunk      float64
	Neck       float64
	Shoulder   float64
	UpperArm   float64
	Forearm    float64
	Hand       float64
	Hip        float64
	Thigh      float64
	Shin       float64
	HeadRadius float64
}

// NewSkeleton returns the fixed bone table scaled by the given factor.
func NewSkeleton(scale float64) Skeleton {
	if scale <= 0 {
		scale = 1
	}
	return Skeleton{
		Trunk:      boneTrunk * scale,
		Neck:       boneNeck * scale,
		Shoulder:   boneShoulder * scale,
		UpperArm:   boneUpperArm * scale,
		Forearm:    boneForearm * scale,
		Hand:       boneHand * scale,
		Hip:        boneHip * scale,
		Thigh:      boneThigh * scale,
		Shin:       boneShin * scale,
		HeadRadius: headRadiusBase * scale,
	}
}

// Height returns the rig's standing height, pelvis to crown plus legs.
func (s Skeleton) Height() float64 {
	return s.Thigh + s.Shin + s.Trunk + s.Neck + s.HeadRadius
}

// Joints holds every resolved joint position for one pose.
type Joints struct {
	Pelvis motion.Point
	Neck   motion.Point
	Head   motion.Point

	ShoulderL, ShoulderR motion.Point
	ElbowL, ElbowR       motion.Point
	WristL, WristR       motion.Point
	FingerL, FingerR     motion.Point

	HipL, HipR     motion.Point
	KneeL, KneeR   motion.Point
	AnkleL, AnkleR motion.Point
}

// dir converts an angle in degrees to a unit vector, 0 degrees pointing up
// in y-down coordinates and positive angles turning clockwise.
func dir(deg float64) motion.Point {
	r := motion.Radians(deg)
	return motion.Point{X: math.Sin(r), Y: -math.Cos(r)}
}

func step(from motion.Point, deg, length float64) motion.Point {
	d := dir(deg)
	return motion.Point{X: from.X + d.X*length, Y: from.Y + d.Y*length}
}

// Forward resolves a pose into joint positions. origin is where the pelvis
// sits before the pose's root offset lifts it.
func (s Skeleton) Forward(origin motion.Point, p Pose) Joints {
	var j Joints

	j.Pelvis = motion.Point{X: origin.X, Y: origin.Y - p.Root}

	j.Neck = step(j.Pelvis, p.Spine, s.Trunk)
	j.Head = step(j.Neck, p.Spine+p.HeadTilt, s.Neck+s.HeadRadius)

	j.ShoulderL = step(j.Neck, p.Spine-90, s.Shoulder)
	j.ShoulderR = step(j.Neck, p.Spine+90, s.Shoulder)

	// Arms hang from the tilted trunk; positive angles swing outward.
	armBase := p.Spine + 180
	lUpper := armBase + p.LUpper
	j.ElbowL = step(j.ShoulderL, lUpper, s.UpperArm)
	lFore := lUpper + p.LFore
	j.WristL = step(j.ElbowL, lFore, s.Forearm)
	j.FingerL = step(j.WristL, lFore+p.LHand, s.Hand)

	rUpper := armBase - p.RUpper
	j.ElbowR = step(j.ShoulderR, rUpper, s.UpperArm)
	rFore := rUpper - p.RFore
	j.WristR = step(j.ElbowR, rFore, s.Forearm)
	j.FingerR = step(j.WristR, rFore-p.RHand, s.Hand)

	// Legs hang straight down from fixed hip sockets.
	j.HipL = step(j.Pelvis, -90, s.Hip)
	j.HipR = step(j.Pelvis, 90, s.Hip)

	lThigh := 180 + p.LThigh
	j.KneeL = step(j.HipL, lThigh, s.Thigh)
	j.AnkleL = step(j.KneeL, lThigh+p.LShin, s.Shin)

	rThigh := 180 - p.RThigh
	j.KneeR = step(j.HipR, rThigh, s.Thigh)
	j.AnkleR = step(j.KneeR, rThigh-p.RShin, s.Shin)

	return j
}

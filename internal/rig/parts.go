package rig

import (
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

// Part is a renderable body segment: its midpoint, on-screen rotation, and
// length. Angle follows the SVG transform convention, atan2 of the segment
// vector minus 90 degrees, so an unrotated part rect drawn along x maps onto
// the bone.
type Part struct {
	Name  string
	Mid   motion.Point
	Angle float64
	Len   float64
	Width float64
}

func partBetween(name string, a, b motion.Point, width float64) Part {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return Part{
		Name:  name,
		Mid:   motion.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2},
		Angle: motion.Degrees(math.Atan2(dy, dx)) - 90,
		Len:   math.Hypot(dx, dy),
		Width: width,
	}
}

// Parts flattens resolved joints into the drawable segment list. Widths are
// proportional to the skeleton scale so heavier bones read heavier on screen.
func (s Skeleton) Parts(j Joints) []Part {
	u := s.Trunk / boneTrunk
	return []Part{
		partBetween("torso", j.Pelvis, j.Neck, 16*u),
		partBetween("neck", j.Neck, j.Head, 7*u),
		partBetween("upper-arm-l", j.ShoulderL, j.ElbowL, 7*u),
		partBetween("forearm-l", j.ElbowL, j.WristL, 6*u),
		partBetween("hand-l", j.WristL, j.FingerL, 5*u),
		partBetween("upper-arm-r", j.ShoulderR, j.ElbowR, 7*u),
		partBetween("forearm-r", j.ElbowR, j.WristR, 6*u),
		partBetween("hand-r", j.WristR, j.FingerR, 5*u),
		partBetween("thigh-l", j.HipL, j.KneeL, 9*u),
		partBetween("shin-l", j.KneeL, j.AnkleL, 7*u),
		partBetween("thigh-r", j.HipR, j.KneeR, 9*u),
		partBetween("shin-r", j.KneeR, j.AnkleR, 7*u),
	}
}

// PartNames lists every part name Parts emits, plus the head, in render order.
// The scene uses it to assign per-part colors before the first frame.
func PartNames() []string {
	return []string{
		"torso", "neck", "head",
		"upper-arm-l", "forearm-l", "hand-l",
		"upper-arm-r", "forearm-r", "hand-r",
		"thigh-l", "shin-l", "thigh-r", "shin-r",
	}
}

// Anchors returns the four limb endpoints, wrists then ankles, where the
// equalizer bars attach.
func (j Joints) Anchors() []motion.Point {
	return []motion.Point{j.WristL, j.WristR, j.AnkleL, j.AnkleR}
}

// Chains returns the five skeletal connections the energy waves trace, each
// ordered root to tip: spine, both arms, both legs.
func (j Joints) Chains() [][]motion.Point {
	return [][]motion.Point{
		{j.Pelvis, j.Neck, j.Head},
		{j.Neck, j.ShoulderL, j.ElbowL, j.WristL, j.FingerL},
		{j.Neck, j.ShoulderR, j.ElbowR, j.WristR, j.FingerR},
		{j.Pelvis, j.HipL, j.KneeL, j.AnkleL},
		{j.Pelvis, j.HipR, j.KneeR, j.AnkleR},
	}
}

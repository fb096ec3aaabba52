// Package rig models the dancer's body: the 13-angle [Pose], the fixed
// [Skeleton] bone table, and forward kinematics resolving a pose into joint
// positions.
//
// Conventions: the plane is y-down (SVG), angles are degrees, and positive
// rotation is clockwise. The trunk angle is measured from straight up, limb
// segments from straight down, and left/right limbs mirror sign so a positive
// angle swings either limb outward. Child angles accumulate along their chain;
// the arms inherit the spine lean, the legs hang from fixed hip sockets.
package rig

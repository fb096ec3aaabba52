package choreo

import (
	"fmt"

	"github.com/desertthunder/bop/internal/rig"
	"github.com/desertthunder/bop/internal/shared"
)

// NamedPose pairs a base pose with its display name.
type NamedPose struct {
	Name string
	Pose rig.Pose
}

// Library holds the base poses and the order the sequencer visits them in.
// Sequence entries index into Poses and may repeat; the sequencer wraps
// around at the end.
type Library struct {
	Name     string
	Poses    []NamedPose
	Sequence []int
}

// Default returns the built-in library: six poses visited in a cycle that
// returns to the anchor between the showier shapes.
func Default() Library {
	return Library{
		Name: "default",
		Poses: []NamedPose{
			{Name: "anchor", Pose: rig.Pose{
				Spine: 2, HeadTilt: -3,
				LUpper: 16, LFore: 22, LHand: 6,
				RUpper: 14, RFore: 20, RHand: 4,
				LThigh: 5, LShin: 7, RThigh: 4, RShin: 6,
			}},
			{Name: "hands-up", Pose: rig.Pose{
				Spine: -2, HeadTilt: 5, Root: 6,
				LUpper: 152, LFore: 18, LHand: 8,
				RUpper: 148, RFore: 22, RHand: 6,
				LThigh: 9, LShin: 11, RThigh: 8, RShin: 9,
			}},
			{Name: "point", Pose: rig.Pose{
				Spine: -6, HeadTilt: 9,
				LUpper: 96, LFore: 4, LHand: 2,
				RUpper: 22, RFore: 68, RHand: 10,
				LThigh: 13, LShin: 6, RThigh: 3, RShin: 4,
			}},
			{Name: "running-man", Pose: rig.Pose{
				Spine: 5, HeadTilt: -6, Root: -5,
				LUpper: 42, LFore: 78, LHand: 10,
				RUpper: 38, RFore: 82, RHand: 8,
				LThigh: 31, LShin: 44, RThigh: 6, RShin: 8,
			}},
			{Name: "twist", Pose: rig.Pose{
				Spine: 12, HeadTilt: -11, Root: -2,
				LUpper: 28, LFore: 94, LHand: 12,
				RUpper: 72, RFore: 18, RHand: 6,
				LThigh: 10, LShin: 17, RThigh: 23, RShin: 7,
			}},
			{Name: "clap", Pose: rig.Pose{
				Spine: 0, HeadTilt: 7, Root: 3,
				LUpper: 118, LFore: 58, LHand: 14,
				RUpper: 122, RFore: 54, RHand: 12,
				LThigh: 6, LShin: 5, RThigh: 7, RShin: 4,
			}},
		},
		Sequence: []int{0, 1, 0, 2, 3, 0, 4, 5},
	}
}

// Validate checks that the library can actually drive the sequencer.
func (l Library) Validate() error {
	if len(l.Poses) < 2 {
		return fmt.Errorf("%w: need at least two poses, have %d", shared.ErrInvalidChoreo, len(l.Poses))
	}
	if len(l.Sequence) == 0 {
		return fmt.Errorf("%w: empty sequence", shared.ErrInvalidChoreo)
	}
	for i, idx := range l.Sequence {
		if idx < 0 || idx >= len(l.Poses) {
			return fmt.Errorf("%w: sequence entry %d points at pose %d of %d", shared.ErrInvalidChoreo, i, idx, len(l.Poses))
		}
	}
	for _, np := range l.Poses {
		if np.Name == "" {
			return fmt.Errorf("%w: unnamed pose", shared.ErrInvalidChoreo)
		}
		p := np.Pose
		for _, wa := range p.Angles() {
			if *wa.Deg < -180 || *wa.Deg > 180 {
				return fmt.Errorf("%w: pose %q angle %v out of [-180, 180]", shared.ErrInvalidChoreo, np.Name, *wa.Deg)
			}
		}
		if p.Root < -60 || p.Root > 60 {
			return fmt.Errorf("%w: pose %q root offset %v out of [-60, 60]", shared.ErrInvalidChoreo, np.Name, p.Root)
		}
	}
	return nil
}

// PoseAt returns the base pose for sequence position i, wrapping at the
// cycle length.
func (l Library) PoseAt(i int) rig.Pose {
	idx := l.Sequence[((i%len(l.Sequence))+len(l.Sequence))%len(l.Sequence)]
	return l.Poses[idx].Pose
}

// NameAt returns the pose name for sequence position i.
func (l Library) NameAt(i int) string {
	idx := l.Sequence[((i%len(l.Sequence))+len(l.Sequence))%len(l.Sequence)]
	return l.Poses[idx].Name
}

// CycleLen returns the number of sequence positions in one full cycle.
func (l Library) CycleLen() int {
	return len(l.Sequence)
}

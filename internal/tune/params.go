package tune

import (
	"fmt"
	"math"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/shared"
)

// Params is the live knob set. Fields are plain float64s; the registry in
// fields.go carries their ranges and defaults. Counts that are logically
// integers (wave layers) are stored as float64 and rounded at use.
type Params struct {
	Scale      float64
	BPM        float64
	ColorMix   float64
	Glow       float64
	WaveAmp    float64
	WaveSpeed  float64
	WaveLayers float64
	WaveFade   float64
	EqGain     float64
	EqRate     float64
	HoldBase   float64
	TransBase  float64
	PoseJitter float64
	DurJitter  float64
	BobAmount  float64
	SwayAmount float64
	BounceAmp  float64
	DriftRate  float64
	DriftAmt   float64
	AutoRate   float64
	Stroke     float64
	KeyShuffle float64
	ArtOdds    float64
	BPMSpring  float64
}

// NewParams returns a parameter set at registry defaults.
func NewParams() *Params {
	p := &Params{}
	p.Reset()
	return p
}

// Reset restores every parameter to its registry default.
func (p *Params) Reset() {
	for _, f := range fields {
		f.set(p, f.Default)
	}
}

// Set writes a parameter by registry name, clamped to its range.
func (p *Params) Set(name string, v float64) error {
	f, ok := FieldByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownParam, name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", shared.ErrInvalidInput, name, v)
	}
	f.set(p, motion.Clamp(v, f.Min, f.Max))
	return nil
}

// Get reads a parameter by registry name.
func (p *Params) Get(name string) (float64, error) {
	f, ok := FieldByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", shared.ErrUnknownParam, name)
	}
	return f.get(p), nil
}

// Snapshot returns a name-to-value copy of every parameter.
func (p *Params) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f.Name] = f.get(p)
	}
	return out
}

// Layers returns the wave layer count as an int in [1, 5].
func (p *Params) Layers() int {
	n := int(math.Round(p.WaveLayers))
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// Tempo returns the sequencer clock multiplier, 1.0 at 120 BPM.
func (p *Params) Tempo() float64 {
	return p.BPM / 120
}

package scene

import (
	"bytes"
	"fmt"
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

const (
	// wavePhaseStep staggers the oscillation along a chain so the curve
	// ripples instead of swinging as a rigid offset.
	wavePhaseStep = 1.7
	// waveJitter is the per-point Gaussian noise fraction of the layer
	// amplitude.
	waveJitter = 0.15

	waveLayerGrow = 0.3
	waveLayerThin = 0.82
	waveOpacity   = 0.8
)

// writeWaves traces a Catmull-Rom curve along each skeletal chain, displacing
// every joint sideways by a traveling sine wave plus noise. Outer layers swing
// wider and fade out.
func (s Stage) writeWaves(buf *bytes.Buffer, f Frame, rng motion.Rand) {
	p := f.P
	if p.WaveAmp <= 0 {
		return
	}
	for ci, chain := range f.Joints.Chains() {
		for l := 0; l < p.Layers(); l++ {
			amp := p.WaveAmp * (1 + waveLayerGrow*float64(l))
			phase := float64(ci)*2.1 + float64(l)*0.9
			pts := displaceChain(chain, amp, p.WaveSpeed, f.Clock, phase, rng)
			segs := motion.CatmullRom(pts)
			if len(segs) == 0 {
				continue
			}
			width := p.Stroke * math.Pow(waveLayerThin, float64(l))
			opacity := waveOpacity * math.Pow(p.WaveFade, float64(l))
			buf.WriteString(fmt.Sprintf(
				`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" opacity="%s"/>`,
				motion.PathData(segs), s.Base, motion.Ftoa(width), motion.Ftoa(opacity)))
		}
	}
}

// displaceChain pushes each point along its local normal by a sine of the
// clock plus a small Gaussian jitter. Degenerate zero-length links keep their
// point unmoved.
func displaceChain(pts []motion.Point, amp, speed, clock, phase float64, rng motion.Rand) []motion.Point {
	out := make([]motion.Point, len(pts))
	for i, p := range pts {
		var dx, dy float64
		if i < len(pts)-1 {
			dx, dy = pts[i+1].X-p.X, pts[i+1].Y-p.Y
		} else {
			dx, dy = p.X-pts[i-1].X, p.Y-pts[i-1].Y
		}
		length := math.Hypot(dx, dy)
		if length == 0 {
			out[i] = p
			continue
		}
		nx, ny := -dy/length, dx/length
		swing := math.Sin(2*math.Pi*speed*clock + phase + float64(i)*wavePhaseStep)
		d := amp*swing + amp*waveJitter*rng.NormFloat64()
		out[i] = motion.Point{X: p.X + nx*d, Y: p.Y + ny*d}
	}
	return out
}

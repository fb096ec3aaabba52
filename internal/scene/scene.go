package scene

import (
	"bytes"
	"fmt"
	"html"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/rig"
	"github.com/desertthunder/bop/internal/tune"
)

// Frame is the per-tick render input shared by every stage. The engine fills
// it once after advancing the simulation; stages must not mutate it.
type Frame struct {
	Joints rig.Joints
	Parts  []rig.Part
	HeadR  float64

	// Beat is the pulse envelope value for this tick, Clock the seconds
	// elapsed since the dancer started.
	Beat  float64
	Clock float64

	// Colors maps part names to raw Camelot key colors. Parts without an
	// entry fall back to the stage body color.
	Colors map[string]string

	Artwork string
	P       *tune.Params
}

// Stage is one visual projection of the simulation.
type Stage struct {
	ID         string
	Width      int
	Height     int
	Scale      float64
	Background string
	Body       string
	Base       string
}

const (
	// originYFrac places the pelvis rest position down the canvas, leaving
	// headroom for raised arms and floor room for kicks.
	originYFrac = 0.62

	glowBase  = 1.2
	glowSwing = 5.0
)

// NewStage returns a stage with the default palette. Callers override colors
// from config before first use.
func NewStage(id string, width, height int, scale float64) Stage {
	if scale <= 0 {
		scale = 1
	}
	return Stage{
		ID:         id,
		Width:      width,
		Height:     height,
		Scale:      scale,
		Background: "#0b0e14",
		Body:       "#222839",
		Base:       "#8ab4f8",
	}
}

// Document renders the frame into a complete SVG document. The rng feeds the
// wave jitter, so two stages rendering the same frame produce related but not
// identical aura noise.
func (s Stage) Document(f Frame, rng motion.Rand) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.Width, s.Height, s.Width, s.Height))
	s.writeDefs(&buf, f)
	buf.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`, s.Width, s.Height, s.Background))

	ax := float64(s.Width) / 2
	ay := float64(s.Height) * originYFrac
	buf.WriteString(fmt.Sprintf(`<g transform="translate(%s %s) scale(%s)">`,
		motion.Ftoa(ax), motion.Ftoa(ay), motion.Ftoa(s.Scale)))
	s.writeWaves(&buf, f, rng)
	s.writeFigure(&buf, f)
	s.writeBars(&buf, f)
	buf.WriteString(`</g>`)

	s.writeArtwork(&buf, f)
	buf.WriteString(`</svg>`)
	return buf.String()
}

// writeDefs emits the glow filter. Blur radius breathes with the beat so the
// whole figure pulses on the downbeat.
func (s Stage) writeDefs(buf *bytes.Buffer, f Frame) {
	blur := glowBase + glowSwing*f.P.Glow*(0.35+0.65*f.Beat)
	buf.WriteString(`<defs>`)
	buf.WriteString(fmt.Sprintf(
		`<filter id="glow-%s" x="-60%%" y="-60%%" width="220%%" height="220%%">`+
			`<feGaussianBlur stdDeviation="%s" result="b"/>`+
			`<feMerge><feMergeNode in="b"/><feMergeNode in="SourceGraphic"/></feMerge>`+
			`</filter>`,
		s.ID, motion.Ftoa(blur)))
	buf.WriteString(`</defs>`)
}

// partColor resolves the fill for a named part, mixing the stage body color
// toward the part's key color by the color-mix parameter.
func (s Stage) partColor(f Frame, name string) string {
	key, ok := f.Colors[name]
	if !ok || key == "" {
		return s.Body
	}
	return motion.HexLerp(s.Body, key, f.P.ColorMix)
}

// writeArtwork draws the current track artwork as a card in the top right
// corner, outside the world transform so zoom does not move it.
func (s Stage) writeArtwork(buf *bytes.Buffer, f Frame) {
	if f.Artwork == "" {
		return
	}
	const size, margin = 64.0, 12.0
	x := float64(s.Width) - size - margin
	buf.WriteString(fmt.Sprintf(
		`<image href="%s" x="%s" y="%s" width="%s" height="%s" opacity="0.92" preserveAspectRatio="xMidYMid slice"/>`,
		html.EscapeString(f.Artwork), motion.Ftoa(x), motion.Ftoa(margin), motion.Ftoa(size), motion.Ftoa(size)))
	buf.WriteString(fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="1" opacity="0.6"/>`,
		motion.Ftoa(x), motion.Ftoa(margin), motion.Ftoa(size), motion.Ftoa(size), s.Base))
}

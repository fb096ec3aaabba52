package scene

import (
	"bytes"
	"fmt"

	"github.com/desertthunder/bop/internal/motion"
)

// writeFigure draws the body segments and head under the glow filter. Each
// part is an axis-aligned capsule rotated into place, so the rect geometry
// never changes between frames, only the transform.
func (s Stage) writeFigure(buf *bytes.Buffer, f Frame) {
	buf.WriteString(fmt.Sprintf(`<g filter="url(#glow-%s)">`, s.ID))
	for _, p := range f.Parts {
		buf.WriteString(fmt.Sprintf(
			`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" transform="translate(%s %s) rotate(%s)" fill="%s"/>`,
			motion.Ftoa(-p.Width/2), motion.Ftoa(-p.Len/2),
			motion.Ftoa(p.Width), motion.Ftoa(p.Len), motion.Ftoa(p.Width/2),
			motion.Ftoa(p.Mid.X), motion.Ftoa(p.Mid.Y), motion.Ftoa(p.Angle),
			s.partColor(f, p.Name)))
	}
	buf.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
		motion.Ftoa(f.Joints.Head.X), motion.Ftoa(f.Joints.Head.Y),
		motion.Ftoa(f.HeadR), s.partColor(f, "head")))
	buf.WriteString(`</g>`)
}

package scene

import (
	"bytes"
	"fmt"
	"math"

	"github.com/desertthunder/bop/internal/motion"
)

const (
	barCount = 5
	barWidth = 3.0
	barGap   = 2.0
	// barBase and barSwing bound the bar height in canvas units before the
	// eq-gain parameter scales it.
	barBase  = 6.0
	barSwing = 22.0
)

// anchorParts names the part whose color each anchor's bars borrow, in
// rig.Anchors order: wrists take the hands, ankles take the shins.
var anchorParts = [...]string{"hand-l", "hand-r", "shin-l", "shin-r"}

// writeBars draws five equalizer bars rising from each wrist and ankle. Every
// bar oscillates at its own fixed frequency and phase; the beat pulse lifts
// all of them together on the downbeat.
func (s Stage) writeBars(buf *bytes.Buffer, f Frame) {
	p := f.P
	if p.EqGain <= 0 {
		return
	}
	for ai, a := range f.Joints.Anchors() {
		color := s.partColor(f, anchorParts[ai])
		for i := 0; i < barCount; i++ {
			freq := p.EqRate * (0.9 + 0.4*float64(i))
			osc := 0.5 + 0.5*math.Sin(2*math.Pi*freq*f.Clock+float64(ai)*1.3+float64(i)*0.8)
			h := p.EqGain * (barBase + barSwing*(0.55*f.Beat+0.45*osc))
			x := a.X + (float64(i)-2)*(barWidth+barGap) - barWidth/2
			buf.WriteString(fmt.Sprintf(
				`<rect x="%s" y="%s" width="%s" height="%s" rx="1" fill="%s" opacity="0.85"/>`,
				motion.Ftoa(x), motion.Ftoa(a.Y-h), motion.Ftoa(barWidth), motion.Ftoa(h), color))
		}
	}
}

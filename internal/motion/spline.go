package motion

import (
	"fmt"
	"strings"
)

// Point is a 2-D coordinate in the y-down SVG plane.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// CubicSegment is one cubic Bezier span: endpoints P0/P1 with control
// points C1/C2.
type CubicSegment struct {
	P0, C1, C2, P1 Point
}

// CatmullRom converts a polyline into smooth cubic segments using the
// uniform Catmull-Rom to Bezier identity (tangent at p[i] is
// (p[i+1]-p[i-1])/2, control offsets are tangent/3). Endpoints are
// duplicated as phantom points, so the curve passes through every input
// and its ends match the first and last inputs exactly.
//
// With fewer than two points the result is nil; with exactly two it is a
// single segment whose endpoints equal the inputs.
func CatmullRom(pts []Point) []CubicSegment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]CubicSegment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		p1 := pts[i]
		p2 := pts[i+1]
		p0 := p1
		if i > 0 {
			p0 = pts[i-1]
		}
		p3 := p2
		if i+2 < len(pts) {
			p3 = pts[i+2]
		}
		segs = append(segs, CubicSegment{
			P0: p1,
			C1: Point{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6},
			C2: Point{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6},
			P1: p2,
		})
	}
	return segs
}

// PathData renders segments as an SVG path string ("M ... C ...").
// Coordinates are rounded to two decimals to keep frames compact.
func PathData(segs []CubicSegment) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", Ftoa(segs[0].P0.X), Ftoa(segs[0].P0.Y))
	for _, s := range segs {
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			Ftoa(s.C1.X), Ftoa(s.C1.Y),
			Ftoa(s.C2.X), Ftoa(s.C2.Y),
			Ftoa(s.P1.X), Ftoa(s.P1.Y),
		)
	}
	return b.String()
}

// Ftoa formats a coordinate with at most two decimal places, trimming
// trailing zeros so integral values stay short.
func Ftoa(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

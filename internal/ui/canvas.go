package ui

import (
	"math"
	"strings"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/rig"
)

// World box the canvas projects, in skeleton units around the pelvis. Wide
// enough for full arm extension and the wander offsets at scale 1.6.
const (
	worldLeft   = -120.0
	worldRight  = 120.0
	worldTop    = -150.0
	worldBottom = 90.0
)

// A terminal cell is roughly twice as tall as it is wide, so one row covers
// two world units for every one a column covers.
const cellAspect = 2.0

// Canvas is a rune grid the skeleton is rasterized into.
type Canvas struct {
	cols, rows int
	k          float64
	cells      [][]rune
}

// NewCanvas sizes a canvas to the given cell box, fitting the world box at a
// uniform scale.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	c := &Canvas{cols: cols, rows: rows}
	c.k = math.Min(
		float64(cols)/(worldRight-worldLeft),
		cellAspect*float64(rows)/(worldBottom-worldTop),
	)
	c.cells = make([][]rune, rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// Clear blanks the grid.
func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = ' '
		}
	}
}

// project maps a world point to fractional cell coordinates, centered.
func (c *Canvas) project(p motion.Point) (float64, float64) {
	x := (p.X-worldLeft)*c.k + (float64(c.cols)-(worldRight-worldLeft)*c.k)/2
	y := (p.Y-worldTop)*c.k/cellAspect + (float64(c.rows)-(worldBottom-worldTop)*c.k/cellAspect)/2
	return x, y
}

// Plot sets one cell if it is inside the grid.
func (c *Canvas) Plot(col, row int, r rune) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row][col] = r
}

// Segment rasterizes a world-space line by sampling along it.
func (c *Canvas) Segment(a, b motion.Point, r rune) {
	ax, ay := c.project(a)
	bx, by := c.project(b)
	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Plot(int(math.Round(ax+(bx-ax)*t)), int(math.Round(ay+(by-ay)*t)), r)
	}
}

// Ring rasterizes a world-space circle outline.
func (c *Canvas) Ring(center motion.Point, radius float64, r rune) {
	steps := 24
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := motion.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		x, y := c.project(p)
		c.Plot(int(math.Round(x)), int(math.Round(y)), r)
	}
}

// Figure draws the full skeleton: chains as bone runs, joints as nodes, the
// head as a ring.
func (c *Canvas) Figure(j rig.Joints, headR float64) {
	for _, chain := range j.Chains() {
		for i := 0; i < len(chain)-1; i++ {
			c.Segment(chain[i], chain[i+1], '█')
		}
		for _, p := range chain {
			x, y := c.project(p)
			c.Plot(int(math.Round(x)), int(math.Round(y)), '●')
		}
	}
	c.Ring(j.Head, headR, '█')
}

// String renders the grid for the terminal.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols + 1))
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String()
}

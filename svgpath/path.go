// Implements an abstract representation of
// shape outlines, which can then be consumed
// by painting drivers.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Drawer accumulates path commands.
// It has the same method set as a rasterx Adder,
// so rasterx fillers and dashers are Drawers.
type Drawer interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations, which should not be nil
// Higher-level shapes are reduced to a path.
type Path []Operation

func fixedToF(v fixed.Int26_6) float32 { return float32(v) / 64 }

// ToSVGPath returns a string representation of the path,
// suitable for the d attribute of an SVG path element.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y), fixedToF(op[2].X), fixedToF(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo replays the path on `d`, after applying the transform `m`.
func (p Path) AddTo(d Drawer, m Matrix2D) {
	q := matrixAdder{M: m, d: d}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(fixed.Point26_6(op))
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// Package shape defines the renderable primitives produced
// by the bridge, and the graphics node holding them.
package shape

import (
	"fmt"

	"github.com/benoitkugler/svgbridge/svgpath"
)

// Bounds defines a bounding box, such as a viewport
// or a shape extent.
type Bounds struct{ X, Y, W, H float64 }

// Empty returns true if the box has no area.
func (b Bounds) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Union returns the smallest box containing `b` and `o`.
// Empty boxes are ignored.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	minX, minY := min(b.X, o.X), min(b.Y, o.Y)
	maxX, maxY := max(b.X+b.W, o.X+o.W), max(b.Y+b.H, o.Y+o.H)
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Shape is a geometric primitive which can be reduced to a path.
type Shape interface {
	Bounds() Bounds
	// Path returns the outline of the shape, in user space.
	Path() svgpath.Path
}

var (
	_ Shape = Rectangle{}
	_ Shape = RoundRectangle{}
)

// Rectangle is an axis aligned rectangle.
type Rectangle struct {
	X, Y, W, H float64
}

func (r Rectangle) Bounds() Bounds { return Bounds{r.X, r.Y, r.W, r.H} }

func (r Rectangle) Path() svgpath.Path {
	var p svgpath.Path
	p.AddRect(r.X, r.Y, r.W, r.H)
	return p
}

func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(x=%g, y=%g, w=%g, h=%g)", r.X, r.Y, r.W, r.H)
}

// RoundRectangle is an axis aligned rectangle with
// elliptical corners of radii Rx and Ry.
type RoundRectangle struct {
	X, Y, W, H float64
	Rx, Ry     float64
}

func (r RoundRectangle) Bounds() Bounds { return Bounds{r.X, r.Y, r.W, r.H} }

func (r RoundRectangle) Path() svgpath.Path {
	var p svgpath.Path
	p.AddRoundRect(r.X, r.Y, r.W, r.H, r.Rx, r.Ry)
	return p
}

// ArcSize returns the width and height of the corner arcs,
// that is twice the radii.
func (r RoundRectangle) ArcSize() (w, h float64) { return 2 * r.Rx, 2 * r.Ry }

func (r RoundRectangle) String() string {
	return fmt.Sprintf("RoundRectangle(x=%g, y=%g, w=%g, h=%g, rx=%g, ry=%g)", r.X, r.Y, r.W, r.H, r.Rx, r.Ry)
}

package svgpath

import (
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transformation,
// shared with the rasterx backend.
type Matrix2D = rasterx.Matrix2D

// Identity is the identity transform
var Identity = rasterx.Identity

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// fromFixedP converts a fixed point to two floats.
func fromFixedP(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// transformFixed applies `m` to the point `p`
func transformFixed(m Matrix2D, p fixed.Point26_6) fixed.Point26_6 {
	return toFixedP(m.Transform(fromFixedP(p)))
}

// matrixAdder applies a transform to every point
// before forwarding it to the underlying Drawer
type matrixAdder struct {
	M Matrix2D
	d Drawer
}

func (m matrixAdder) Start(a fixed.Point26_6) {
	m.d.Start(transformFixed(m.M, a))
}

func (m matrixAdder) Line(b fixed.Point26_6) {
	m.d.Line(transformFixed(m.M, b))
}

func (m matrixAdder) QuadBezier(b, c fixed.Point26_6) {
	m.d.QuadBezier(transformFixed(m.M, b), transformFixed(m.M, c))
}

func (m matrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	m.d.CubeBezier(transformFixed(m.M, b), transformFixed(m.M, c), transformFixed(m.M, d))
}

func (m matrixAdder) Stop(closeLoop bool) {
	m.d.Stop(closeLoop)
}

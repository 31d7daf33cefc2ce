package svgpath

// This file implements the transformation from
// high level shapes to their path equivalent

// kappa is the distance of the control points of a cubic
// bezier approximating a quarter of a unit circle.
const kappa = 0.5522847498307936

// AddRect adds the closed outline of the rectangle at (x, y)
// of size (w, h).
func (p *Path) AddRect(x, y, w, h float64) {
	p.Start(toFixedP(x, y))
	p.Line(toFixedP(x+w, y))
	p.Line(toFixedP(x+w, y+h))
	p.Line(toFixedP(x, y+h))
	p.Stop(true)
}

// AddRoundRect adds the closed outline of the rectangle at (x, y)
// of size (w, h), with elliptical corners of radius
// rx in the x axis and ry in the y axis.
// Radii are clamped to half the corresponding dimension,
// and a non positive radius yields a plain rectangle.
func (p *Path) AddRoundRect(x, y, w, h, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(x, y, w, h)
		return
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	maxX, maxY := x+w, y+h
	kx, ky := rx*kappa, ry*kappa

	p.Start(toFixedP(x+rx, y))
	p.Line(toFixedP(maxX-rx, y))
	p.CubeBezier(toFixedP(maxX-rx+kx, y), toFixedP(maxX, y+ry-ky), toFixedP(maxX, y+ry))
	p.Line(toFixedP(maxX, maxY-ry))
	p.CubeBezier(toFixedP(maxX, maxY-ry+ky), toFixedP(maxX-rx+kx, maxY), toFixedP(maxX-rx, maxY))
	p.Line(toFixedP(x+rx, maxY))
	p.CubeBezier(toFixedP(x+rx-kx, maxY), toFixedP(x, maxY-ry+ky), toFixedP(x, maxY-ry))
	p.Line(toFixedP(x, y+ry))
	p.CubeBezier(toFixedP(x, y+ry-ky), toFixedP(x+rx-kx, y), toFixedP(x+rx, y))
	p.Stop(true)
}

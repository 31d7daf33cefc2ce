package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// compute the bouding box of a path, curve extrema included

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fromFixedP(l[0])
	p1x, p1y := fromFixedP(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]fixed.Point26_6

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := fromFixedP(cu[0])
	p1x, p1y := fromFixedP(cu[1])
	p2x, p2y := fromFixedP(cu[2])

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)

	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fromFixedP(cu[0])
	p1x, p1y := fromFixedP(cu[1])
	p2x, p2y := fromFixedP(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := fromFixedP(cu[0])
	c1x, c1y := fromFixedP(cu[1])
	c2x, c2y := fromFixedP(cu[2])
	p2x, p2y := fromFixedP(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fromFixedP(cu[0])
	p1x, p1y := fromFixedP(cu[1])
	p2x, p2y := fromFixedP(cu[2])
	p3x, p3y := fromFixedP(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c: a line
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(d)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

// extend grows the box [min, max] so that it contains `curve`
func extend(curve bezier, minX, minY, maxX, maxY *float64) {
	resX, resY := curve.criticalPoints()
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		*minX = math.Min(x, *minX)
		*minY = math.Min(y, *minY)
		*maxX = math.Max(x, *maxX)
		*maxY = math.Max(y, *maxY)
	}
}

// Bounds returns the exact bounding box of the path.
// An empty path has an empty box.
func (p Path) Bounds() fixed.Rectangle26_6 {
	if len(p) == 0 {
		return fixed.Rectangle26_6{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var first, current fixed.Point26_6
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current = fixed.Point26_6(op)
			first = current
			extend(line{current, current}, &minX, &minY, &maxX, &maxY)
		case LineTo:
			extend(line{current, fixed.Point26_6(op)}, &minX, &minY, &maxX, &maxY)
			current = fixed.Point26_6(op)
		case QuadTo:
			extend(quadBezier{current, op[0], op[1]}, &minX, &minY, &maxX, &maxY)
			current = op[1]
		case CubicTo:
			extend(cubicBezier{current, op[0], op[1], op[2]}, &minX, &minY, &maxX, &maxY)
			current = op[2]
		case Close:
			current = first
		}
	}
	return fixed.Rectangle26_6{Min: roundFixedP(minX, minY), Max: roundFixedP(maxX, maxY)}
}

// roundFixedP converts two floats to the nearest fixed point,
// absorbing the rounding errors of the polynomial evaluation.
func roundFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

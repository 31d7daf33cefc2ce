// Package svgunit converts SVG lengths (numbers with an optional unit)
// into user space values.
package svgunit

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidLength is returned (wrapped) for malformed lengths.
var ErrInvalidLength = errors.New("invalid length")

// Direction selects the reference dimension used
// to resolve percentages.
type Direction uint8

const (
	Horizontal Direction = iota // relative to the viewport width
	Vertical                    // relative to the viewport height
	Other                       // relative to the normalized viewport diagonal
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Other:
		return "other"
	default:
		return "<unknown Direction>"
	}
}

// Context provides the values needed to resolve relative units.
type Context interface {
	ViewportWidth() float64
	ViewportHeight() float64
	FontSize() float64
	XHeight() float64
	// PixelUnitToMillimeter is the size of a user unit, in mm.
	PixelUnitToMillimeter() float64
}

// Viewport is a basic Context.
type Viewport struct {
	Width, Height float64
	Font, X       float64 // font size and x-height
	PixelToMM     float64
}

var _ Context = Viewport{} // assert interface conformance

// PixelToMM96 is the size of a pixel at 96 dpi, in millimeters.
const PixelToMM96 = 25.4 / 96

// DefaultViewport returns a context for a viewport of the given size,
// with a 12 user units font and a 96 dpi resolution.
func DefaultViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Font: 12, X: 6, PixelToMM: PixelToMM96}
}

func (v Viewport) ViewportWidth() float64         { return v.Width }
func (v Viewport) ViewportHeight() float64        { return v.Height }
func (v Viewport) FontSize() float64              { return v.Font }
func (v Viewport) XHeight() float64               { return v.X }
func (v Viewport) PixelUnitToMillimeter() float64 { return v.PixelToMM }

// Unit is the unit of an SVG length.
type Unit uint8

const (
	UserUnit Unit = iota // no unit given
	Px
	Pt
	Pc
	Mm
	Cm
	In
	Em
	Ex
	Percent
)

// unitSuffixes is ordered so that no suffix is
// shadowed by a shorter one
var unitSuffixes = [...]struct {
	suffix string
	unit   Unit
}{
	{"px", Px},
	{"pt", Pt},
	{"pc", Pc},
	{"mm", Mm},
	{"cm", Cm},
	{"in", In},
	{"em", Em},
	{"ex", Ex},
	{"%", Percent},
}

// Length is a parsed SVG length.
type Length struct {
	Value float64
	Unit  Unit
}

// ParseLength splits `s` into its value and unit.
func ParseLength(s string) (Length, error) {
	v := strings.TrimSpace(s)
	unit := UserUnit
	for _, u := range unitSuffixes {
		if strings.HasSuffix(v, u.suffix) {
			unit = u.unit
			v = strings.TrimSuffix(v, u.suffix)
			break
		}
	}
	if v == "" {
		return Length{}, errors.Wrapf(ErrInvalidLength, "%q", s)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, errors.Wrapf(ErrInvalidLength, "%q", s)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ToUserSpace resolves the length in the given direction.
func (l Length) ToUserSpace(d Direction, ctx Context) float64 {
	pxToMM := ctx.PixelUnitToMillimeter()
	switch l.Unit {
	case Pt:
		return l.Value * 25.4 / 72 / pxToMM
	case Pc:
		return l.Value * 25.4 / 6 / pxToMM
	case Mm:
		return l.Value / pxToMM
	case Cm:
		return l.Value * 10 / pxToMM
	case In:
		return l.Value * 25.4 / pxToMM
	case Em:
		return l.Value * ctx.FontSize()
	case Ex:
		return l.Value * ctx.XHeight()
	case Percent:
		return l.Value * percentBase(d, ctx) / 100
	default: // UserUnit, Px
		return l.Value
	}
}

func percentBase(d Direction, ctx Context) float64 {
	w, h := ctx.ViewportWidth(), ctx.ViewportHeight()
	switch d {
	case Horizontal:
		return w
	case Vertical:
		return h
	default:
		return math.Sqrt((w*w + h*h) / 2)
	}
}

// ToUserSpace parses the length `s` and converts it to user space.
func ToUserSpace(s string, d Direction, ctx Context) (float64, error) {
	l, err := ParseLength(s)
	if err != nil {
		return 0, err
	}
	return l.ToUserSpace(d, ctx), nil
}

package bridge

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svgunit"
)

// presentation attributes read on the element itself
// (no cascade is performed)
const (
	AttrFill        = "fill"
	AttrStroke      = "stroke"
	AttrStrokeWidth = "stroke-width"
	AttrOpacity     = "opacity"
)

func isPaintAttr(name string) bool {
	switch name {
	case AttrFill, AttrStroke, AttrStrokeWidth, AttrOpacity:
		return true
	}
	return false
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// applyPaint resets the paint of `n` from the presentation
// attributes of `e`.
func applyPaint(ctx *Context, n *shape.Node, e *svgdom.Element) error {
	paint := shape.DefaultPaint
	if s := e.GetAttributeNS("", AttrFill); s != "" {
		c, err := parseColor(s)
		if err != nil {
			return invalidAttr(e.Tag(), AttrFill, s, err.Error())
		}
		paint.Fill = c
	}
	if s := e.GetAttributeNS("", AttrStroke); s != "" {
		c, err := parseColor(s)
		if err != nil {
			return invalidAttr(e.Tag(), AttrStroke, s, err.Error())
		}
		paint.Stroke = c
	}
	if s := e.GetAttributeNS("", AttrStrokeWidth); s != "" {
		l, err := svgunit.ParseLength(s)
		if err != nil || l.Value < 0 {
			return invalidAttr(e.Tag(), AttrStrokeWidth, s, "expected a non negative length")
		}
		paint.StrokeWidth = l.ToUserSpace(svgunit.Other, ctx.Units)
	}
	if s := e.GetAttributeNS("", AttrOpacity); s != "" {
		op, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return invalidAttr(e.Tag(), AttrOpacity, s, "expected a number")
		}
		paint.Opacity = min(max(op, 0), 1)
	}
	n.Fill, n.Stroke = paint.Fill, paint.Stroke
	n.StrokeWidth, n.Opacity = paint.StrokeWidth, paint.Opacity
	return nil
}

type colorError string

func (c colorError) Error() string { return string(c) }

// parseColor parses an SVG color.
// "none" returns a nil color.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none":
		return nil, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBColor(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"))
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, colorError("unknown color")
}

func parseHexColor(hex string) (color.Color, error) {
	var digits [6]uint8
	switch len(hex) {
	case 3: // #rgb is #rrggbb
		for i := range hex {
			d, ok := hexDigit(hex[i])
			if !ok {
				return nil, colorError("invalid hex color")
			}
			digits[2*i], digits[2*i+1] = d, d
		}
	case 6:
		for i := range hex {
			d, ok := hexDigit(hex[i])
			if !ok {
				return nil, colorError("invalid hex color")
			}
			digits[i] = d
		}
	default:
		return nil, colorError("invalid hex color")
	}
	return color.NRGBA{
		R: digits[0]<<4 | digits[1],
		G: digits[2]<<4 | digits[3],
		B: digits[4]<<4 | digits[5],
		A: 0xff,
	}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// parseRGBColor parses the r,g,b components, either integers
// in [0, 255] or percentages.
func parseRGBColor(args string) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, colorError("rgb() expects 3 components")
	}
	var out [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		percent := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return nil, colorError("invalid rgb() component")
		}
		if percent {
			v = v * 255 / 100
		}
		out[i] = uint8(min(max(v, 0), 255) + 0.5)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: 0xff}, nil
}

package svggen

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgpath"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	indent       = "  "
)

// Graphics records drawing operations and streams them as SVG.
// The zero value is not usable: see NewGraphics.
type Graphics struct {
	ctx Context
	ids *IDGenerator

	width, height float64

	color       color.Color
	strokeWidth float64
	tx, ty      float64 // current translation
	clip        string  // id of the current clip path, if any

	defs     []string
	elements []string
}

// NewGraphics returns an empty drawing, painting in black
// with a stroke width of 1.
func NewGraphics(ctx Context) *Graphics {
	if ctx.Precision <= 0 {
		ctx.Precision = DefaultPrecision
	}
	return &Graphics{
		ctx:         ctx,
		ids:         NewIDGenerator(ctx.IDPrefix),
		color:       color.Black,
		strokeWidth: 1,
	}
}

// Context returns the settings of the graphics.
func (g *Graphics) Context() Context { return g.ctx }

// SetCanvasSize sets the width and height of the root element.
// A zero size is not written.
func (g *Graphics) SetCanvasSize(width, height float64) { g.width, g.height = width, height }

// SetColor sets the color used by the subsequent operations.
func (g *Graphics) SetColor(c color.Color) { g.color = c }

// SetStrokeWidth sets the line width used by Draw operations.
func (g *Graphics) SetStrokeWidth(w float64) { g.strokeWidth = w }

// Translate moves the origin of the user space by (dx, dy).
func (g *Graphics) Translate(dx, dy float64) {
	g.tx += dx
	g.ty += dy
}

// ClipRect restricts the subsequent operations to the given
// rectangle, expressed in the current user space.
// It replaces the current clip.
func (g *Graphics) ClipRect(x, y, w, h float64) {
	g.clip = ""
	id := g.ids.GenerateID("clipPath")
	g.defs = append(g.defs,
		fmt.Sprintf(`<clipPath id="%s">`, id),
		indent+g.rectElement(x, y, w, h, nil),
		`</clipPath>`,
	)
	g.clip = id
}

// ResetClip removes the current clip.
func (g *Graphics) ResetClip() { g.clip = "" }

// Fill fills the interior of `s` with the current color.
func (g *Graphics) Fill(s shape.Shape) {
	g.add(s, g.fillAttrs(g.color), g.strokeAttrs(nil, 0))
}

// Draw strokes the outline of `s` with the current color and stroke width.
func (g *Graphics) Draw(s shape.Shape) {
	g.add(s, g.fillAttrs(nil), g.strokeAttrs(g.color, g.strokeWidth))
}

// FillRect fills the given rectangle.
func (g *Graphics) FillRect(x, y, w, h float64) { g.Fill(shape.Rectangle{X: x, Y: y, W: w, H: h}) }

// DrawRect strokes the given rectangle.
func (g *Graphics) DrawRect(x, y, w, h float64) { g.Draw(shape.Rectangle{X: x, Y: y, W: w, H: h}) }

// FillRoundRect fills the given rectangle, with corners of radii `rx` and `ry`.
func (g *Graphics) FillRoundRect(x, y, w, h, rx, ry float64) {
	g.Fill(shape.RoundRectangle{X: x, Y: y, W: w, H: h, Rx: rx, Ry: ry})
}

// DrawRoundRect strokes the given rectangle, with corners of radii `rx` and `ry`.
func (g *Graphics) DrawRoundRect(x, y, w, h, rx, ry float64) {
	g.Draw(shape.RoundRectangle{X: x, Y: y, W: w, H: h, Rx: rx, Ry: ry})
}

// DrawLine strokes the segment from (x1, y1) to (x2, y2).
func (g *Graphics) DrawLine(x1, y1, x2, y2 float64) {
	attrs := []string{
		g.attr("x1", g.num(x1+g.tx)), g.attr("y1", g.num(y1+g.ty)),
		g.attr("x2", g.num(x2+g.tx)), g.attr("y2", g.num(y2+g.ty)),
	}
	attrs = append(attrs, g.strokeAttrs(g.color, g.strokeWidth)...)
	g.elements = append(g.elements, g.element("line", attrs))
}

// PaintNode paints the shape of `n` with its own paint,
// ignoring the current color and stroke width.
// Invisible nodes are skipped.
func (g *Graphics) PaintNode(n *shape.Node) {
	if !n.Visible() {
		return
	}
	paint := g.strokeAttrs(n.Stroke, n.StrokeWidth)
	if n.Opacity < 1 {
		paint = append(paint, g.attr("opacity", g.num(n.Opacity)))
	}
	g.add(n.Shape(), g.fillAttrs(n.Fill), paint)
}

// Stream writes the SVG document.
func (g *Graphics) Stream(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if g.ctx.Comment != "" {
		fmt.Fprintf(&b, "<!--%s-->\n", escapeComment(g.ctx.Comment))
	}
	fmt.Fprintf(&b, `<svg xmlns="%s" version="1.1"`, svgNamespace)
	if g.width > 0 && g.height > 0 {
		fmt.Fprintf(&b, ` width="%s" height="%s"`, g.num(g.width), g.num(g.height))
	}
	b.WriteString(">\n")
	if len(g.defs) != 0 {
		b.WriteString(indent + "<defs>\n")
		for _, def := range g.defs {
			b.WriteString(indent + indent + def + "\n")
		}
		b.WriteString(indent + "</defs>\n")
	}
	for _, elem := range g.elements {
		b.WriteString(indent + elem + "\n")
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (g *Graphics) add(s shape.Shape, fill, stroke []string) {
	attrs := append(fill, stroke...)
	var elem string
	switch s := s.(type) {
	case shape.Rectangle:
		elem = g.rectElement(s.X, s.Y, s.W, s.H, attrs)
	case shape.RoundRectangle:
		attrs = append([]string{g.attr("rx", g.num(s.Rx)), g.attr("ry", g.num(s.Ry))}, attrs...)
		elem = g.rectElement(s.X, s.Y, s.W, s.H, attrs)
	default:
		var path svgpath.Path
		s.Path().AddTo(&path, svgpath.Identity.Translate(g.tx, g.ty))
		elem = g.element("path", append([]string{g.attr("d", path.ToSVGPath())}, attrs...))
	}
	g.elements = append(g.elements, elem)
}

func (g *Graphics) rectElement(x, y, w, h float64, attrs []string) string {
	geom := []string{
		g.attr("x", g.num(x+g.tx)), g.attr("y", g.num(y+g.ty)),
		g.attr("width", g.num(w)), g.attr("height", g.num(h)),
	}
	return g.element("rect", append(geom, attrs...))
}

// element adds the current clip, if any
func (g *Graphics) element(tag string, attrs []string) string {
	if g.clip != "" {
		attrs = append(attrs, g.attr("clip-path", "url(#"+g.clip+")"))
	}
	return "<" + tag + " " + strings.Join(attrs, " ") + "/>"
}

func (g *Graphics) fillAttrs(c color.Color) []string {
	if c == nil {
		return []string{g.attr("fill", "none")}
	}
	hex, alpha := colorToSVG(c)
	out := []string{g.attr("fill", hex)}
	if alpha < 0xff {
		out = append(out, g.attr("fill-opacity", g.num(float64(alpha)/0xff)))
	}
	return out
}

func (g *Graphics) strokeAttrs(c color.Color, width float64) []string {
	if c == nil || width <= 0 {
		return []string{g.attr("stroke", "none")}
	}
	hex, alpha := colorToSVG(c)
	out := []string{g.attr("stroke", hex)}
	if alpha < 0xff {
		out = append(out, g.attr("stroke-opacity", g.num(float64(alpha)/0xff)))
	}
	return append(out, g.attr("stroke-width", g.num(width)))
}

func (g *Graphics) attr(name, value string) string {
	return name + `="` + value + `"`
}

// num formats `v` with at most ctx.Precision decimals
func (g *Graphics) num(v float64) string {
	scale := math.Pow10(g.ctx.Precision)
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // avoid -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// colorToSVG returns the #rrggbb form of `c` and its alpha.
func colorToSVG(c color.Color) (string, uint8) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B), nc.A
}

func escapeComment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	// "-->" would close the comment early
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}

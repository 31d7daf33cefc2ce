// Implements a raster backend to render graphics nodes,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgbridge/bridge"
	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svgpath"
)

var _ svgpath.Drawer = (*Renderer)(nil) // assert interface conformance

// DefaultMiterLimit is the miter limit used for strokes.
const DefaultMiterLimit = 4

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// The filler and the stroker need their own scanner, since
// a path is sent to both at once.
// The non zero winding rule is used by default.
func NewRenderer(width, height int, fillScanner, strokeScanner rasterx.Scanner) *Renderer {
	rd := &Renderer{
		dasher: rasterx.NewDasher(width, height, strokeScanner),
		filler: rasterx.NewFiller(width, height, fillScanner),
	}
	rd.SetWinding(true)
	return rd
}

// RasterNodes uses ScannerGV instances to render the
// nodes into a new image of size (width, height), after
// applying the transform `m`.
// A non positive size is replaced by the extent of the nodes.
func RasterNodes(nodes []*shape.Node, width, height int, m svgpath.Matrix2D) *image.RGBA {
	if width <= 0 || height <= 0 {
		ext := shape.Extent(nodes)
		width, height = int(math.Ceil(ext.X+ext.W)), int(math.Ceil(ext.Y+ext.H))
		width, height = max(width, 1), max(height, 1)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	renderer := NewRenderer(width, height,
		rasterx.NewScannerGV(width, height, img, img.Bounds()),
		rasterx.NewScannerGV(width, height, img, img.Bounds()),
	)
	for _, n := range nodes {
		renderer.DrawNode(n, m)
	}
	return img
}

// RasterSVG decodes an SVG document, bridges its elements
// and renders them at the size of the root viewport.
func RasterSVG(svg io.Reader, mode bridge.ErrorMode, log zerolog.Logger) (*image.RGBA, error) {
	doc, err := svgdom.Decode(svg)
	if err != nil {
		return nil, err
	}
	ctx := bridge.NewContext(doc, log)
	ctx.ErrorMode = mode
	nodes, err := bridge.Build(ctx, doc)
	if err != nil {
		return nil, err
	}
	w, h := doc.Viewport()
	return RasterNodes(nodes, int(math.Ceil(w)), int(math.Ceil(h)), svgpath.Identity), nil
}

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
}

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.dasher.SetWinding(useNonZeroWinding)
	rd.filler.SetWinding(useNonZeroWinding)
}

// SetStrokeWidth sets a solid stroke of the given width,
// with butt caps and miter joins.
func (rd *Renderer) SetStrokeWidth(width float64) {
	rd.dasher.SetStroke(
		fixed.Int26_6(width*64), DefaultMiterLimit*64, rasterx.ButtCap,
		rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0,
	)
}

// SetFillColor sets the color used by Fill.
func (rd *Renderer) SetFillColor(c color.Color, opacity float64) {
	rd.filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

// SetStrokeColor sets the color used by Stroke.
func (rd *Renderer) SetStrokeColor(c color.Color, opacity float64) {
	rd.dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

// DrawNode fills then strokes the shape of `n`.
// Invisible nodes are skipped.
func (rd *Renderer) DrawNode(n *shape.Node, m svgpath.Matrix2D) {
	if !n.Visible() {
		return
	}
	stroke := n.Stroke != nil && n.StrokeWidth > 0

	rd.Clear()
	if stroke {
		// stroke widths follow the average scaling of the transform
		scale := math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
		rd.SetStrokeWidth(n.StrokeWidth * scale)
	}
	n.Shape().Path().AddTo(rd, m)

	if n.Fill != nil {
		rd.SetFillColor(n.Fill, n.Opacity)
		rd.Fill()
	}
	if stroke {
		rd.SetStrokeColor(n.Stroke, n.Opacity)
		rd.Stroke()
	}
}

func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.filler.Start(a)
	rd.dasher.Start(a)
}

func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.filler.Line(b)
	rd.dasher.Line(b)
}

func (rd *Renderer) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	rd.filler.QuadBezier(b, c)
	rd.dasher.QuadBezier(b, c)
}

func (rd *Renderer) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	rd.filler.CubeBezier(b, c, d)
	rd.dasher.CubeBezier(b, c, d)
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Fill() {
	rd.filler.Draw()
}

func (rd *Renderer) Stroke() {
	rd.dasher.Draw()
}

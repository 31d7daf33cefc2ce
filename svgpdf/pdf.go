// Implements a PDF backend to render graphics nodes,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgpath"
)

var _ svgpath.Drawer = pather{} // assert interface conformance

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// NewPage returns a one page document of size (width, height),
// in points, with the origin at the top left corner.
func NewPage(width, height float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// WriteNodes renders the nodes on a page of size (width, height)
// and writes the PDF file to `w`.
// A non positive size is replaced by the extent of the nodes.
func WriteNodes(w io.Writer, nodes []*shape.Node, width, height float64) error {
	if width <= 0 || height <= 0 {
		ext := shape.Extent(nodes)
		width, height = max(ext.X+ext.W, 1), max(ext.Y+ext.H, 1)
	}
	pdf := NewPage(width, height)
	r := NewRenderer(pdf)
	for _, n := range nodes {
		r.DrawNode(n, svgpath.Identity)
	}
	return pdf.Output(w)
}

// writes the path commands to the current PDF path
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// returns the 8 bits components, and the opacity
// combined with the alpha of `c`
func rgb(c color.Color, opacity float64) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), opacity * float64(nc.A) / 255
}

// DrawNode fills then strokes the shape of `n`, transformed by `m`.
// Invisible nodes are skipped.
func (r Renderer) DrawNode(n *shape.Node, m svgpath.Matrix2D) {
	if !n.Visible() {
		return
	}
	path := n.Shape().Path()
	p := pather{pdf: r.pdf}
	if n.Fill != nil {
		red, green, blue, alpha := rgb(n.Fill, n.Opacity)
		r.pdf.SetFillColor(red, green, blue)
		r.pdf.SetAlpha(alpha, "")
		path.AddTo(p, m)
		r.pdf.DrawPath("F")
	}
	if n.Stroke != nil && n.StrokeWidth > 0 {
		red, green, blue, alpha := rgb(n.Stroke, n.Opacity)
		r.pdf.SetDrawColor(red, green, blue)
		r.pdf.SetAlpha(alpha, "")
		r.pdf.SetLineWidth(n.StrokeWidth * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C)))
		path.AddTo(p, m)
		r.pdf.DrawPath("D")
	}
	r.pdf.SetAlpha(1, "")
}

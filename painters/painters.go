// Package painters provides the drawings checked by
// the accuracy command.
package painters

import (
	"bytes"
	_ "embed"
	"image/color"
	"sort"

	"github.com/rs/zerolog"

	"github.com/benoitkugler/svgbridge/accuracy"
	"github.com/benoitkugler/svgbridge/bridge"
	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svggen"
)

// painter is a named drawing
type painter struct {
	name  string
	paint func(g *svggen.Graphics) error
}

var _ accuracy.Named = painter{}

func (p painter) Name() string { return p.name }
func (p painter) Paint(g *svggen.Graphics) error { return p.paint(g) }

var registry = map[string]accuracy.Painter{}

func register(name string, paint func(g *svggen.Graphics) error) {
	registry[name] = painter{name: name, paint: paint}
}

func init() {
	register("rects", paintRects)
	register("roundrects", paintRoundRects)
	register("clip", paintClip)
	register("bridge", paintBridge)
}

// Names returns the sorted names of the registered painters.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the painter registered with `name`.
func Lookup(name string) (accuracy.Painter, bool) {
	p, ok := registry[name]
	return p, ok
}

func paintRects(g *svggen.Graphics) error {
	g.SetColor(color.RGBA{R: 0xff, A: 0xff})
	g.FillRect(10, 10, 100, 50)
	g.SetColor(color.RGBA{B: 0xff, A: 0xff})
	g.SetStrokeWidth(2)
	g.DrawRect(10, 80, 100, 50)
	g.SetColor(color.NRGBA{G: 0x80, A: 0x80})
	g.FillRect(150, 10, 100, 120)
	return nil
}

func paintRoundRects(g *svggen.Graphics) error {
	g.SetColor(color.RGBA{R: 0xff, G: 0xa5, A: 0xff})
	g.FillRoundRect(10, 10, 100, 50, 10, 10)
	g.SetColor(color.Black)
	g.DrawRoundRect(10, 80, 100, 50, 20, 5)
	return nil
}

func paintClip(g *svggen.Graphics) error {
	g.Translate(20, 20)
	g.ClipRect(0, 0, 50, 50)
	g.SetColor(color.RGBA{R: 0xff, A: 0xff})
	g.FillRect(0, 0, 100, 100)
	g.ResetClip()
	g.SetColor(color.Black)
	g.DrawLine(0, 0, 100, 100)
	return nil
}

//go:embed testdata/bridge_source.svg
var bridgeSource []byte

// paintBridge builds the nodes of an SVG document, applies
// a mutation to one of its elements, and paints the nodes.
func paintBridge(g *svggen.Graphics) error {
	doc, err := svgdom.Decode(bytes.NewReader(bridgeSource))
	if err != nil {
		return err
	}
	ctx := bridge.NewContext(doc, zerolog.Nop())
	ctx.ErrorMode = bridge.StrictErrorMode
	nodes, err := bridge.Build(ctx, doc)
	if err != nil {
		return err
	}
	if err = doc.ElementByID("grow").SetAttributeNS("", bridge.AttrWidth, "80"); err != nil {
		return err
	}
	for _, n := range nodes {
		g.PaintNode(n)
	}
	return nil
}

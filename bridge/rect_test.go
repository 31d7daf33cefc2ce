package bridge

import (
	"encoding/xml"
	"image/color"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svgunit"
)

func TestResolveRect(t *testing.T) {
	for _, tt := range []struct {
		name  string
		attrs RectAttrs
		want  shape.Shape
		kind  error
	}{
		{
			name:  "missing width",
			attrs: RectAttrs{Height: 10, HasHeight: true},
			kind:  ErrMissingAttribute,
		},
		{
			name:  "missing height",
			attrs: RectAttrs{Width: 10, HasWidth: true},
			kind:  ErrMissingAttribute,
		},
		{
			name:  "negative width",
			attrs: RectAttrs{Width: -1, Height: 10, HasWidth: true, HasHeight: true},
			kind:  ErrInvalidAttributeValue,
		},
		{
			name:  "negative ry",
			attrs: RectAttrs{Width: 10, Height: 10, Ry: -2, HasWidth: true, HasHeight: true, HasRy: true},
			kind:  ErrInvalidAttributeValue,
		},
		{
			name:  "plain",
			attrs: RectAttrs{X: 1, Y: 2, Width: 10, Height: 20, HasWidth: true, HasHeight: true},
			want:  shape.Rectangle{X: 1, Y: 2, W: 10, H: 20},
		},
		{
			name:  "zero size",
			attrs: RectAttrs{HasWidth: true, HasHeight: true},
			want:  shape.Rectangle{},
		},
		{
			name:  "only rx",
			attrs: RectAttrs{Width: 10, Height: 20, Rx: 3, HasWidth: true, HasHeight: true, HasRx: true},
			want:  shape.RoundRectangle{W: 10, H: 20, Rx: 3, Ry: 3},
		},
		{
			name:  "only ry",
			attrs: RectAttrs{Width: 10, Height: 20, Ry: 4, HasWidth: true, HasHeight: true, HasRy: true},
			want:  shape.RoundRectangle{W: 10, H: 20, Rx: 4, Ry: 4},
		},
		{
			// ry is copied from rx before clamping
			name:  "only rx, clamped",
			attrs: RectAttrs{Width: 10, Height: 40, Rx: 8, HasWidth: true, HasHeight: true, HasRx: true},
			want:  shape.RoundRectangle{W: 10, H: 40, Rx: 5, Ry: 8},
		},
		{
			name:  "both clamped",
			attrs: RectAttrs{Width: 10, Height: 20, Rx: 100, Ry: 100, HasWidth: true, HasHeight: true, HasRx: true, HasRy: true},
			want:  shape.RoundRectangle{W: 10, H: 20, Rx: 5, Ry: 10},
		},
		{
			name:  "zero rx",
			attrs: RectAttrs{Width: 10, Height: 20, Ry: 4, HasWidth: true, HasHeight: true, HasRx: true, HasRy: true},
			want:  shape.Rectangle{W: 10, H: 20},
		},
		{
			name:  "zero height clamps ry",
			attrs: RectAttrs{Width: 10, Rx: 4, HasWidth: true, HasHeight: true, HasRx: true},
			want:  shape.Rectangle{W: 10},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRect(tt.attrs)
			if tt.kind != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.kind), err.Error())
				var attrErr *AttributeError
				assert.True(t, errors.As(err, &attrErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func rectElement(attrs ...string) *svgdom.Element {
	se := xml.StartElement{Name: xml.Name{Local: "rect"}}
	for i := 0; i+1 < len(attrs); i += 2 {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return svgdom.NewElement(se)
}

func testContext() *Context {
	return &Context{Units: svgunit.DefaultViewport(200, 100), ErrorMode: StrictErrorMode, Log: zerolog.Nop()}
}

func TestCreateShape(t *testing.T) {
	ctx := testContext()

	s, err := RectBridge{}.CreateShape(ctx, rectElement("x", "10%", "y", "50%", "width", "1in", "height", "2em", "rx", "1"))
	require.NoError(t, err)
	rr, ok := s.(shape.RoundRectangle)
	require.True(t, ok)
	assert.Equal(t, 20., rr.X)
	assert.Equal(t, 50., rr.Y)
	assert.InDelta(t, 96, rr.W, 1e-9)
	assert.Equal(t, 24., rr.H)
	assert.Equal(t, 1., rr.Rx)
	assert.Equal(t, 1., rr.Ry)

	// empty attributes count as missing
	_, err = RectBridge{}.CreateShape(ctx, rectElement("width", "", "height", "10"))
	assert.True(t, errors.Is(err, ErrMissingAttribute))

	_, err = RectBridge{}.CreateShape(ctx, rectElement("width", "10", "height", "abc"))
	assert.True(t, errors.Is(err, ErrInvalidAttributeValue))
	var attrErr *AttributeError
	require.True(t, errors.As(err, &attrErr))
	assert.Equal(t, "height", attrErr.Attr)
	assert.Equal(t, "abc", attrErr.Value)

	_, err = RectBridge{}.CreateShape(ctx, rectElement("width", "10", "height", "10", "rx", "-3"))
	assert.True(t, errors.Is(err, ErrInvalidAttributeValue))
}

func TestCreateNodePaint(t *testing.T) {
	ctx := testContext()

	n, err := RectBridge{}.CreateNode(ctx, rectElement("width", "10", "height", "10"))
	require.NoError(t, err)
	assert.Equal(t, color.Black, n.Fill)
	assert.Nil(t, n.Stroke)
	assert.True(t, n.Visible())

	n, err = RectBridge{}.CreateNode(ctx, rectElement("width", "10", "height", "10",
		"fill", "none", "stroke", "#f00", "stroke-width", "3", "opacity", "0.5"))
	require.NoError(t, err)
	assert.Nil(t, n.Fill)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, n.Stroke)
	assert.Equal(t, 3., n.StrokeWidth)
	assert.Equal(t, 0.5, n.Opacity)

	_, err = RectBridge{}.CreateNode(ctx, rectElement("width", "10", "height", "10", "fill", "#12"))
	assert.True(t, errors.Is(err, ErrInvalidAttributeValue))
}

func TestParseColor(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want color.Color
	}{
		{"none", nil},
		{"#0a0B0c", color.NRGBA{R: 0x0a, G: 0x0b, B: 0x0c, A: 0xff}},
		{" #abc ", color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
		{"rgb(1, 2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}},
		{"rgb(100%,0%,50%)", color.NRGBA{R: 255, G: 0, B: 128, A: 0xff}},
		{"Blue", color.RGBA{B: 0xff, A: 0xff}},
	} {
		got, err := parseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, in := range []string{"", "#ggg", "#1234", "rgb(1,2)", "rgb(a,b,c)", "notacolor"} {
		_, err := parseColor(in)
		assert.Error(t, err, in)
	}
}

func TestUpdate(t *testing.T) {
	ctx := testContext()
	e := rectElement("width", "10", "height", "20")
	node, err := Bind(ctx, RectBridge{}, e)
	require.NoError(t, err)
	assert.Equal(t, shape.Rectangle{W: 10, H: 20}, node.Shape())

	require.NoError(t, e.SetAttributeNS("", "rx", "3"))
	assert.Equal(t, shape.RoundRectangle{W: 10, H: 20, Rx: 3, Ry: 3}, node.Shape())

	require.NoError(t, e.SetAttributeNS("", "x", "5"))
	assert.Equal(t, shape.RoundRectangle{X: 5, W: 10, H: 20, Rx: 3, Ry: 3}, node.Shape())

	// invalid change: the error is returned and the shape is kept
	err = e.SetAttributeNS("", "width", "-4")
	assert.True(t, errors.Is(err, ErrInvalidAttributeValue))
	assert.Equal(t, shape.RoundRectangle{X: 5, W: 10, H: 20, Rx: 3, Ry: 3}, node.Shape())
	require.NoError(t, e.SetAttributeNS("", "width", "10"))

	err = e.RemoveAttributeNS("", "height")
	assert.True(t, errors.Is(err, ErrMissingAttribute))
	assert.Equal(t, shape.RoundRectangle{X: 5, W: 10, H: 20, Rx: 3, Ry: 3}, node.Shape())

	require.NoError(t, e.SetAttributeNS("", "height", "20"))
	require.NoError(t, e.SetAttributeNS("", "width", "30"))
	require.NoError(t, e.RemoveAttributeNS("", "rx"))
	assert.Equal(t, shape.Rectangle{X: 5, W: 30, H: 20}, node.Shape())

	require.NoError(t, e.SetAttributeNS("", "fill", "red"))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, node.Fill)

	// unrelated attributes are ignored
	require.NoError(t, e.SetAttributeNS("", "id", "r"))
	require.NoError(t, e.SetAttributeNS("http://www.w3.org/1999/xlink", "title", "t"))

	err = e.SetAttributeNS("", "style", "fill:blue")
	assert.True(t, errors.Is(err, ErrUnsupportedMutation))
}

func TestUpdateStyleMutation(t *testing.T) {
	ctx := testContext()
	e := rectElement("width", "10", "height", "20")
	node, err := RectBridge{}.CreateNode(ctx, e)
	require.NoError(t, err)

	err = RectBridge{}.Update(MutationEvent{Type: StyleMutation, Context: ctx, Element: e, Node: node})
	assert.True(t, errors.Is(err, ErrUnsupportedMutation))
}

const document = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100">
	<title>rects</title>
	<g>
		<rect width="50%" height="10"/>
		<circle r="4"/>
		<rect x="1" width="10" height="10" rx="20"/>
	</g>
</svg>`

func TestBuild(t *testing.T) {
	doc, err := svgdom.Decode(strings.NewReader(document))
	require.NoError(t, err)

	var logs strings.Builder
	ctx := NewContext(doc, zerolog.New(&logs))
	assert.Equal(t, WarnErrorMode, ctx.ErrorMode)

	nodes, err := Build(ctx, doc)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, shape.Rectangle{W: 100, H: 10}, nodes[0].Shape())
	assert.Equal(t, shape.RoundRectangle{X: 1, W: 10, H: 10, Rx: 5, Ry: 5}, nodes[1].Shape())
	assert.Contains(t, logs.String(), "circle")

	ctx.ErrorMode = IgnoreErrorMode
	logs.Reset()
	_, err = Build(ctx, doc)
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	ctx.ErrorMode = StrictErrorMode
	_, err = Build(ctx, doc)
	assert.True(t, errors.Is(err, ErrUnsupportedElement))

	br, ok := Lookup("rect")
	assert.True(t, ok)
	assert.Equal(t, RectBridge{}, br)
	_, ok = Lookup("circle")
	assert.False(t, ok)
}

func TestBuildInvalid(t *testing.T) {
	doc, err := svgdom.Decode(strings.NewReader(`<svg><rect id="bad" width="10"/></svg>`))
	require.NoError(t, err)
	_, err = Build(NewContext(doc, zerolog.Nop()), doc)
	assert.True(t, errors.Is(err, ErrMissingAttribute))
	assert.Contains(t, err.Error(), "bad")
}

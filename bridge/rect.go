package bridge

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svgunit"
)

// Attribute names of the <rect> element
const (
	AttrX      = "x"
	AttrY      = "y"
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrRx     = "rx"
	AttrRy     = "ry"
)

const rectTag = "rect"

// RectAttrs are the resolved (user space) values of the
// geometric attributes of a rectangle. The Has fields
// record which attributes were explicitly given.
type RectAttrs struct {
	X, Y          float64
	Width, Height float64
	Rx, Ry        float64

	HasWidth, HasHeight, HasRx, HasRy bool
}

// ResolveRect returns the Rectangle or RoundRectangle described by `a`.
//
// Width and height are required and must not be negative, nor can rx and ry.
// A radius missing is set to the other one, then
// rx is clamped to width/2 and ry to height/2.
// A zero radius yields a plain Rectangle.
func ResolveRect(a RectAttrs) (shape.Shape, error) {
	if !a.HasWidth {
		return nil, missingAttr(rectTag, AttrWidth)
	}
	if !a.HasHeight {
		return nil, missingAttr(rectTag, AttrHeight)
	}
	for _, v := range [...]struct {
		name  string
		value float64
		set   bool
	}{
		{AttrWidth, a.Width, true},
		{AttrHeight, a.Height, true},
		{AttrRx, a.Rx, a.HasRx},
		{AttrRy, a.Ry, a.HasRy},
	} {
		if v.set && v.value < 0 {
			return nil, invalidAttr(rectTag, v.name, formatFloat(v.value), "negative")
		}
	}

	rx, ry := a.Rx, a.Ry
	switch {
	case a.HasRx && !a.HasRy:
		ry = rx
	case a.HasRy && !a.HasRx:
		rx = ry
	case !a.HasRx && !a.HasRy:
		rx, ry = 0, 0
	}
	if rx > a.Width/2 {
		rx = a.Width / 2
	}
	if ry > a.Height/2 {
		ry = a.Height / 2
	}

	if rx == 0 || ry == 0 {
		return shape.Rectangle{X: a.X, Y: a.Y, W: a.Width, H: a.Height}, nil
	}
	return shape.RoundRectangle{X: a.X, Y: a.Y, W: a.Width, H: a.Height, Rx: rx, Ry: ry}, nil
}

// RectBridge bridges the <rect> element.
type RectBridge struct{}

var _ Bridge = RectBridge{} // assert interface conformance

// length reads the attribute `name` of `e`, in user space.
// An absent or empty attribute returns `set` false.
func length(ctx *Context, e *svgdom.Element, name string, d svgunit.Direction) (v float64, set bool, err error) {
	s := e.GetAttributeNS("", name)
	if s == "" {
		return 0, false, nil
	}
	v, err = svgunit.ToUserSpace(s, d, ctx.Units)
	if err != nil {
		return 0, true, invalidAttr(e.Tag(), name, s, errors.Cause(err).Error())
	}
	return v, true, nil
}

// readRectAttrs parses the geometric attributes of `e`.
func readRectAttrs(ctx *Context, e *svgdom.Element) (a RectAttrs, err error) {
	for _, field := range [...]struct {
		name  string
		dir   svgunit.Direction
		value *float64
		set   *bool
	}{
		{AttrX, svgunit.Horizontal, &a.X, nil},
		{AttrY, svgunit.Vertical, &a.Y, nil},
		{AttrWidth, svgunit.Horizontal, &a.Width, &a.HasWidth},
		{AttrHeight, svgunit.Vertical, &a.Height, &a.HasHeight},
		{AttrRx, svgunit.Horizontal, &a.Rx, &a.HasRx},
		{AttrRy, svgunit.Vertical, &a.Ry, &a.HasRy},
	} {
		v, set, err := length(ctx, e, field.name, field.dir)
		if err != nil {
			return a, err
		}
		*field.value = v
		if field.set != nil {
			*field.set = set
		}
	}
	return a, nil
}

// CreateShape returns a Rectangle or a RoundRectangle depending on the
// x, y, width, height, rx and ry attributes of `e`.
func (RectBridge) CreateShape(ctx *Context, e *svgdom.Element) (shape.Shape, error) {
	a, err := readRectAttrs(ctx, e)
	if err != nil {
		return nil, err
	}
	return ResolveRect(a)
}

// CreateNode returns a node painting the shape of `e`
// with the presentation attributes of `e`.
func (b RectBridge) CreateNode(ctx *Context, e *svgdom.Element) (*shape.Node, error) {
	s, err := b.CreateShape(ctx, e)
	if err != nil {
		return nil, err
	}
	n := shape.NewNode(s)
	if err = applyPaint(ctx, n, e); err != nil {
		return nil, err
	}
	return n, nil
}

// Update applies the mutation described by `evt`.
// Changes of the geometric attributes rebuild the shape of the node;
// on failure the node keeps its previous shape and the error is returned.
func (b RectBridge) Update(evt MutationEvent) error {
	switch evt.Type {
	case PropertyMutation:
		switch evt.AttrName {
		case AttrX, AttrY, AttrWidth, AttrHeight, AttrRx, AttrRy:
			s, err := b.CreateShape(evt.Context, evt.Element)
			if err != nil {
				return err
			}
			evt.Node.SetShape(s)
			evt.Context.Log.Debug().Str("element", evt.Element.ID()).Str("attr", evt.AttrName).
				Str("shape", fmt.Sprint(s)).Msg("shape updated")
		default:
			if isPaintAttr(evt.AttrName) {
				return applyPaint(evt.Context, evt.Node, evt.Element)
			}
		}
		return nil
	case StyleMutation:
		return errors.Wrapf(ErrUnsupportedMutation, "style mutation of <%s>", evt.Element.Tag())
	default:
		return errors.Wrapf(ErrUnsupportedMutation, "mutation type %d", evt.Type)
	}
}

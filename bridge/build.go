package bridge

import (
	"github.com/pkg/errors"

	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
)

// ErrUnsupportedElement is returned in StrictErrorMode
// for graphical elements without bridge.
var ErrUnsupportedElement = errors.New("unsupported element")

var bridges = map[string]Bridge{
	rectTag: RectBridge{},
}

// elements without geometry
var structural = map[string]bool{
	"svg":      true,
	"g":        true,
	"defs":     true,
	"title":    true,
	"desc":     true,
	"metadata": true,
}

// Lookup returns the bridge registered for `tag`.
func Lookup(tag string) (Bridge, bool) {
	b, ok := bridges[tag]
	return b, ok
}

// Build creates the nodes of the elements of `doc`, in document order,
// binding each of them to its element.
// An element with invalid attributes is an error; unknown elements
// are handled according to ctx.ErrorMode.
func Build(ctx *Context, doc *svgdom.Document) ([]*shape.Node, error) {
	var nodes []*shape.Node
	for _, e := range doc.Elements {
		if e.Name.Space != "" && e.Name.Space != svgNamespace {
			continue
		}
		tag := e.Tag()
		if structural[tag] {
			continue
		}
		br, ok := Lookup(tag)
		if !ok {
			switch ctx.ErrorMode {
			case StrictErrorMode:
				return nil, errors.Wrapf(ErrUnsupportedElement, "<%s>", tag)
			case WarnErrorMode:
				ctx.Log.Warn().Str("element", tag).Msg("unsupported element skipped")
			}
			continue
		}
		node, err := Bind(ctx, br, e)
		if err != nil {
			return nil, errors.Wrapf(err, "<%s id=%q>", tag, e.ID())
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

const svgNamespace = "http://www.w3.org/2000/svg"

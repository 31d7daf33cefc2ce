package bridge

import (
	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
)

// MutationType distinguishes attribute and style changes.
type MutationType uint8

const (
	// PropertyMutation is a change of an attribute value.
	PropertyMutation MutationType = iota
	// StyleMutation is a change of the inline style of the element.
	StyleMutation
)

func (t MutationType) String() string {
	switch t {
	case PropertyMutation:
		return "property"
	case StyleMutation:
		return "style"
	default:
		return "<unknown MutationType>"
	}
}

// MutationEvent describes a change of an element
// already bridged to Node.
type MutationEvent struct {
	Type     MutationType
	Context  *Context
	Element  *svgdom.Element
	Node     *shape.Node
	AttrName string
}

// Bridge builds the graphics node of an element and
// keeps it in sync with the element.
type Bridge interface {
	CreateNode(ctx *Context, e *svgdom.Element) (*shape.Node, error)
	Update(evt MutationEvent) error
}

// binding forwards the attribute changes of an element
// to the bridge which created its node.
type binding struct {
	bridge Bridge
	ctx    *Context
	node   *shape.Node
}

func (b binding) AttributeChanged(m svgdom.AttrMutation) error {
	evt := MutationEvent{
		Type:     PropertyMutation,
		Context:  b.ctx,
		Element:  m.Element,
		Node:     b.node,
		AttrName: m.Name.Local,
	}
	switch {
	case m.Name.Space != "":
		// foreign attributes don't affect the geometry
		return nil
	case m.Name.Local == "style":
		evt.Type = StyleMutation
	}
	return b.bridge.Update(evt)
}

// Bind creates the node of `e` with `br` and registers it so that
// the subsequent changes of `e` are applied to the node.
func Bind(ctx *Context, br Bridge, e *svgdom.Element) (*shape.Node, error) {
	node, err := br.CreateNode(ctx, e)
	if err != nil {
		return nil, err
	}
	e.AddListener(binding{bridge: br, ctx: ctx, node: node})
	return node, nil
}

package shape

import "image/color"

// Node is a graphics node: a shape and the way it is painted.
// The shape is replaced when the source element mutates.
type Node struct {
	shape Shape

	Fill        color.Color // nil disables filling
	Stroke      color.Color // nil disables stroking
	StrokeWidth float64
	Opacity     float64
}

// DefaultPaint fills in black, without stroke, at full opacity.
var DefaultPaint = Node{
	Fill:        color.Black,
	StrokeWidth: 1,
	Opacity:     1,
}

// NewNode returns a node painting `s` with DefaultPaint.
func NewNode(s Shape) *Node {
	n := DefaultPaint
	n.shape = s
	return &n
}

// Shape returns the current shape, which may be nil.
func (n *Node) Shape() Shape { return n.shape }

// SetShape replaces the shape of the node.
func (n *Node) SetShape(s Shape) { n.shape = s }

// Visible returns false when painting the node
// would have no effect.
func (n *Node) Visible() bool {
	if n.shape == nil || n.Opacity <= 0 {
		return false
	}
	if n.Fill == nil && (n.Stroke == nil || n.StrokeWidth <= 0) {
		return false
	}
	return !n.shape.Bounds().Empty()
}

// Extent returns the area covered when painting the node:
// the exact bounds of its outline, grown by half the stroke
// width when stroked. Invisible nodes have an empty extent.
func (n *Node) Extent() Bounds {
	if !n.Visible() {
		return Bounds{}
	}
	r := n.shape.Path().Bounds()
	b := Bounds{
		X: float64(r.Min.X) / 64,
		Y: float64(r.Min.Y) / 64,
		W: float64(r.Max.X-r.Min.X) / 64,
		H: float64(r.Max.Y-r.Min.Y) / 64,
	}
	if n.Stroke != nil && n.StrokeWidth > 0 {
		hw := n.StrokeWidth / 2
		b = Bounds{X: b.X - hw, Y: b.Y - hw, W: b.W + 2*hw, H: b.H + 2*hw}
	}
	return b
}

// Extent returns the union of the extents of the nodes.
func Extent(nodes []*Node) Bounds {
	var out Bounds
	for _, n := range nodes {
		out = out.Union(n.Extent())
	}
	return out
}

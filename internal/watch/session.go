// Package watch keeps the nodes bridged from an SVG file
// in sync with the file content.
package watch

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/benoitkugler/svgbridge/bridge"
	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svgdom"
)

// Session is a bridged document.
type Session struct {
	ctx   *bridge.Context
	doc   *svgdom.Document
	nodes []*shape.Node
}

// Open decodes and bridges the file at `path`.
func Open(path string, mode bridge.ErrorMode, log zerolog.Logger) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewSession(f, mode, log)
}

// NewSession decodes and bridges a document.
func NewSession(r io.Reader, mode bridge.ErrorMode, log zerolog.Logger) (*Session, error) {
	s := new(Session)
	if err := s.rebuild(r, mode, log); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) rebuild(r io.Reader, mode bridge.ErrorMode, log zerolog.Logger) error {
	doc, err := svgdom.Decode(r)
	if err != nil {
		return err
	}
	ctx := bridge.NewContext(doc, log)
	ctx.ErrorMode = mode
	nodes, err := bridge.Build(ctx, doc)
	if err != nil {
		return err
	}
	s.ctx, s.doc, s.nodes = ctx, doc, nodes
	return nil
}

// Nodes returns the current nodes, in document order.
func (s *Session) Nodes() []*shape.Node { return s.nodes }

// Document returns the bridged document.
func (s *Session) Document() *svgdom.Document { return s.doc }

// Report describes the outcome of a reload.
type Report struct {
	// Rebuilt is true when the elements changed, so that
	// the nodes were built again.
	Rebuilt bool
	// Mutations is the number of attribute changes applied.
	Mutations int
}

// Reload reads the new content of the document. When the elements
// are the same (same tags in the same order) and the root viewport
// is unchanged, only the changed
// attributes are applied to the existing elements, so that their
// nodes are updated in place. Attribute errors are returned,
// the faulty nodes keeping their previous shape.
// Otherwise, the nodes are built from scratch.
func (s *Session) Reload(r io.Reader) (Report, error) {
	doc, err := svgdom.Decode(r)
	if err != nil {
		return Report{}, err
	}
	if !sameStructure(s.doc, doc) {
		s.ctx.Log.Info().Msg("elements or viewport changed: rebuilding nodes")
		// relative lengths resolve against the new viewport
		ctx := bridge.NewContext(doc, s.ctx.Log)
		ctx.ErrorMode = s.ctx.ErrorMode
		nodes, err := bridge.Build(ctx, doc)
		if err != nil {
			return Report{}, err
		}
		s.ctx, s.doc, s.nodes = ctx, doc, nodes
		return Report{Rebuilt: true}, nil
	}

	var (
		rep  Report
		errs []error
	)
	for i, e := range s.doc.Elements {
		n, err := applyAttributes(e, doc.Elements[i])
		rep.Mutations += n
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "element %d <%s>", i, e.Tag()))
		}
	}
	return rep, stderrors.Join(errs...)
}

// sameStructure returns true if the documents have the same
// elements and the same root viewport.
func sameStructure(old, next *svgdom.Document) bool {
	if len(old.Elements) != len(next.Elements) {
		return false
	}
	oldW, oldH := old.Viewport()
	nextW, nextH := next.Viewport()
	if oldW != nextW || oldH != nextH {
		return false
	}
	for i, e := range old.Elements {
		if e.Name != next.Elements[i].Name {
			return false
		}
	}
	return true
}

// applyAttributes mutates `dst` so that its attributes
// match the ones of `src`.
func applyAttributes(dst, src *svgdom.Element) (int, error) {
	var (
		count int
		errs  []error
	)
	for _, attr := range dst.Attrs() {
		if !src.HasAttributeNS(attr.Name.Space, attr.Name.Local) {
			count++
			if err := dst.RemoveAttributeNS(attr.Name.Space, attr.Name.Local); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, attr := range src.Attrs() {
		if dst.HasAttributeNS(attr.Name.Space, attr.Name.Local) &&
			dst.GetAttributeNS(attr.Name.Space, attr.Name.Local) == attr.Value {
			continue
		}
		count++
		if err := dst.SetAttributeNS(attr.Name.Space, attr.Name.Local, attr.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return count, stderrors.Join(errs...)
}

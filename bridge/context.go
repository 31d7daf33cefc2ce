// Package bridge maps SVG elements to renderable shapes,
// and keeps the shapes in sync with the elements.
package bridge

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/benoitkugler/svgbridge/svgdom"
	"github.com/benoitkugler/svgbridge/svgunit"
)

// ErrorMode is the for setting how the bridge behaves
// when an element it doesn't handle is found.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning about unsupported elements.
	WarnErrorMode
	// StrictErrorMode fails on unsupported elements.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// Context holds the services used while bridging elements.
type Context struct {
	Units     svgunit.Context
	ErrorMode ErrorMode
	Log       zerolog.Logger
}

// NewContext returns a context for the document, using its
// root viewport to resolve relative lengths.
func NewContext(doc *svgdom.Document, log zerolog.Logger) *Context {
	w, h := doc.Viewport()
	return &Context{Units: svgunit.DefaultViewport(w, h), ErrorMode: WarnErrorMode, Log: log}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, errors.Errorf("invalid error mode %q", s)
}

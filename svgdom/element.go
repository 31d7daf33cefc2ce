// Package svgdom provides attribute level access to the elements
// of an SVG document, with change notifications.
// It does not build a tree nor resolve styles.
package svgdom

import (
	"encoding/xml"
	stderrors "errors"
)

// MutationListener is notified when an attribute of an element changes.
// Errors returned by listeners are reported to the caller of the mutating method.
type MutationListener interface {
	AttributeChanged(m AttrMutation) error
}

// AttrMutation describes an attribute change.
type AttrMutation struct {
	Element   *Element
	Name      xml.Name
	PrevValue string // empty if the attribute was absent
	NewValue  string // empty if the attribute was removed
	Removed   bool
}

// Element is an SVG element and its attributes,
// in document order.
type Element struct {
	Name  xml.Name
	attrs []xml.Attr

	listeners []MutationListener
}

// NewElement copies the name and attributes of `se`.
func NewElement(se xml.StartElement) *Element {
	return &Element{Name: se.Name, attrs: append([]xml.Attr(nil), se.Attr...)}
}

// Tag returns the local name of the element.
func (e *Element) Tag() string { return e.Name.Local }

// Attrs returns a copy of the attributes.
func (e *Element) Attrs() []xml.Attr { return append([]xml.Attr(nil), e.attrs...) }

func (e *Element) index(ns, local string) int {
	for i, attr := range e.attrs {
		if attr.Name.Space == ns && attr.Name.Local == local {
			return i
		}
	}
	return -1
}

// GetAttributeNS returns the value of the attribute, or
// an empty string if it is not present.
func (e *Element) GetAttributeNS(ns, local string) string {
	if i := e.index(ns, local); i >= 0 {
		return e.attrs[i].Value
	}
	return ""
}

// HasAttributeNS returns true if the attribute is present.
func (e *Element) HasAttributeNS(ns, local string) bool {
	return e.index(ns, local) >= 0
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.GetAttributeNS("", "id") }

// AddListener registers `l`, which will be notified of
// every subsequent attribute change.
func (e *Element) AddListener(l MutationListener) {
	e.listeners = append(e.listeners, l)
}

// SetAttributeNS sets the attribute and notifies the listeners.
// Setting an attribute to its current value is a no-op.
func (e *Element) SetAttributeNS(ns, local, value string) error {
	m := AttrMutation{Element: e, Name: xml.Name{Space: ns, Local: local}, NewValue: value}
	if i := e.index(ns, local); i >= 0 {
		if e.attrs[i].Value == value {
			return nil
		}
		m.PrevValue = e.attrs[i].Value
		e.attrs[i].Value = value
	} else {
		e.attrs = append(e.attrs, xml.Attr{Name: m.Name, Value: value})
	}
	return e.notify(m)
}

// RemoveAttributeNS removes the attribute, if present,
// and notifies the listeners.
func (e *Element) RemoveAttributeNS(ns, local string) error {
	i := e.index(ns, local)
	if i < 0 {
		return nil
	}
	m := AttrMutation{Element: e, Name: e.attrs[i].Name, PrevValue: e.attrs[i].Value, Removed: true}
	e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
	return e.notify(m)
}

func (e *Element) notify(m AttrMutation) error {
	var errs []error
	for _, l := range e.listeners {
		if err := l.AttributeChanged(m); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

package bridge

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingAttribute is the kind of errors raised
	// when a required attribute is absent or empty.
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrInvalidAttributeValue is the kind of errors raised
	// when an attribute value is malformed or out of range.
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
	// ErrUnsupportedMutation is returned by Update for
	// mutations the bridge can't apply.
	ErrUnsupportedMutation = errors.New("unsupported mutation")
)

// AttributeError reports a problem with an attribute of an element.
// Use errors.Is with ErrMissingAttribute or ErrInvalidAttributeValue
// to find its kind.
type AttributeError struct {
	Element string // tag of the element
	Attr    string
	Value   string
	Kind    error
	Reason  string
}

func (e *AttributeError) Error() string {
	msg := fmt.Sprintf("<%s> %s: %v", e.Element, e.Attr, e.Kind)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *AttributeError) Unwrap() error { return e.Kind }

func missingAttr(tag, attr string) error {
	return &AttributeError{Element: tag, Attr: attr, Kind: ErrMissingAttribute}
}

func invalidAttr(tag, attr, value, reason string) error {
	return &AttributeError{Element: tag, Attr: attr, Value: value, Kind: ErrInvalidAttributeValue, Reason: reason}
}

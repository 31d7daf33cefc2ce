package svgdom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// ErrNoElement is returned when decoding a stream without any element.
var ErrNoElement = errors.New("invalid svg: no element found")

// Document is the flat, document ordered list of
// the elements of an SVG file.
type Document struct {
	Elements []*Element
}

// Decode reads the elements from the given io.Reader.
// Character data, comments and processing instructions are ignored.
func Decode(stream io.Reader) (*Document, error) {
	doc := new(Document)
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "decoding svg")
		}
		if se, ok := t.(xml.StartElement); ok {
			doc.Elements = append(doc.Elements, NewElement(se))
		}
	}
	if len(doc.Elements) == 0 {
		return nil, ErrNoElement
	}
	return doc, nil
}

// ReadFile reads the elements from the named file.
func ReadFile(path string) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	doc, err := Decode(fin)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return doc, nil
}

// Root returns the first element of the document.
func (doc *Document) Root() *Element {
	if len(doc.Elements) == 0 {
		return nil
	}
	return doc.Elements[0]
}

// ElementByID returns the first element with the given id, or nil.
func (doc *Document) ElementByID(id string) *Element {
	for _, e := range doc.Elements {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// ElementsByTag returns the elements with the given local name.
func (doc *Document) ElementsByTag(tag string) []*Element {
	var out []*Element
	for _, e := range doc.Elements {
		if e.Tag() == tag {
			out = append(out, e)
		}
	}
	return out
}

// DefaultViewportSize is used when the root element
// defines neither its size nor a view box.
const DefaultViewportSize = 100

// Viewport returns the size of the root viewport, read
// from the width and height attributes of the root element,
// then from its viewBox.
// Only unitless and px sizes are used.
func (doc *Document) Viewport() (width, height float64) {
	width, height = DefaultViewportSize, DefaultViewportSize
	root := doc.Root()
	if root == nil {
		return
	}
	var vbW, vbH float64
	if fields := strings.FieldsFunc(root.GetAttributeNS("", "viewBox"), func(r rune) bool {
		return r == ',' || r == ' '
	}); len(fields) == 4 {
		vbW, _ = strconv.ParseFloat(fields[2], 64)
		vbH, _ = strconv.ParseFloat(fields[3], 64)
	}
	width = pickSize(root.GetAttributeNS("", "width"), vbW, width)
	height = pickSize(root.GetAttributeNS("", "height"), vbH, height)
	return
}

func pickSize(attr string, viewBox, def float64) float64 {
	attr = strings.TrimSuffix(strings.TrimSpace(attr), "px")
	if v, err := strconv.ParseFloat(attr, 64); err == nil && v > 0 {
		return v
	}
	if viewBox > 0 {
		return viewBox
	}
	return def
}

// Package svggen writes simple drawings as SVG markup.
//
// The output is deterministic: the same sequence of calls always
// produces the same bytes, one element per line, which makes it
// suitable for comparison with reference files.
package svggen

import "strconv"

// DefaultPrecision is the number of decimals used for coordinates.
const DefaultPrecision = 4

// Context stores the settings shared by the graphics
// of a generation.
type Context struct {
	// Comment, if not empty, is written at the top of the document.
	Comment string
	// IDPrefix is prepended to generated ids.
	IDPrefix string
	// Precision is the number of decimals kept for numbers.
	Precision int
}

// DefaultContext returns a context without comment nor prefix,
// and DefaultPrecision.
func DefaultContext() Context {
	return Context{Precision: DefaultPrecision}
}

// IDGenerator returns unique ids for the definitions of a document,
// of the form <prefix><kind><n>, starting at 1 for each kind.
type IDGenerator struct {
	prefix string
	counts map[string]int
}

// NewIDGenerator returns a generator using `prefix`.
// Characters of `prefix` not allowed in an XML name are replaced
// by '_', so that the ids are valid in id attributes and url(#id)
// references.
func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: sanitizeName(prefix), counts: make(map[string]int)}
}

func isNameChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' || c == '_' || c == '-' || c == '.'
}

// sanitizeName maps `s` to ASCII name characters.
// A name must start with a letter or '_'.
func sanitizeName(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if !isNameChar(c) {
			b[i] = '_'
		}
	}
	if c := b[0]; !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_') {
		return "_" + string(b)
	}
	return string(b)
}

// GenerateID returns a new id for `kind`.
func (g *IDGenerator) GenerateID(kind string) string {
	g.counts[kind]++
	return g.prefix + kind + strconv.Itoa(g.counts[kind])
}

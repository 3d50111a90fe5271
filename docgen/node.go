package docgen

import (
	"html"
	"strings"
)

// Node is one node in a markup fragment tree. Fragments are assembled as
// typed trees and serialized by a single renderer so escaping policy and
// attribute order live in exactly one place.
type Node interface {
	write(b *strings.Builder)
}

// Attr is an ordered element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a markup element with ordered attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// El creates an element node.
func El(tag string, attrs ...Attr) *Element {
	return &Element{Tag: tag, Attrs: attrs}
}

// Child appends child nodes and returns the element for chaining.
func (e *Element) Child(nodes ...Node) *Element {
	e.Children = append(e.Children, nodes...)
	return e
}

// Text is character data, escaped on serialization.
type Text string

// Raw is markup emitted verbatim. It exists for placeholder tokens only;
// everything else goes through Text and gets escaped.
type Raw string

func (e *Element) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, attr := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidElements[e.Tag] {
		return
	}
	for _, child := range e.Children {
		child.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

func (t Text) write(b *strings.Builder) {
	b.WriteString(html.EscapeString(string(t)))
}

func (r Raw) write(b *strings.Builder) {
	b.WriteString(string(r))
}

var voidElements = map[string]bool{
	"input": true,
	"br":    true,
	"meta":  true,
}

// RenderNode serializes a fragment tree.
func RenderNode(n Node) string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// styleOf joins css declarations into a style attribute value. Declarations
// keep their given order so serialized fragments are reproducible.
func styleOf(decls ...string) string {
	return strings.Join(decls, " ")
}

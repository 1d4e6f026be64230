// Package vector is a minimal vector-graphics element tree.
//
// Both render targets build their output as a tree of [Element] values and
// serialize it with [Element.WriteTo], so path data is produced in exactly
// one place. Attributes keep insertion order, which makes serialization
// byte-stable.
package vector

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Attr is one attribute.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Element is one node of the tree.
type Element struct {
	Name     string     `json:"name"`
	Attrs    []Attr     `json:"attrs,omitempty"`
	Children []*Element `json:"children,omitempty"`

	// Text is escaped character data written before the children.
	Text string `json:"text,omitempty"`

	// Raw is written verbatim inside a CDATA section (inline style/script).
	Raw string `json:"raw,omitempty"`
}

// New returns an element with attributes given as key/value pairs. A
// trailing odd key is ignored.
func New(name string, kv ...string) *Element {
	e := &Element{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Attrs = append(e.Attrs, Attr{Key: kv[i], Value: kv[i+1]})
	}
	return e
}

// Set sets key to value, replacing an existing attribute in place.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Get returns the value of key.
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Walk visits e and its descendants depth-first in document order. Returning
// false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns every element in document order for which match is true.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if match(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// PathData returns the d attribute of every path under root in document
// order.
func PathData(root *Element) []string {
	var out []string
	root.Walk(func(el *Element) bool {
		if el.Name == "path" {
			if d, ok := el.Get("d"); ok {
				out = append(out, d)
			}
		}
		return true
	})
	return out
}

// WriteTo serializes the tree as indented XML.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	e.write(&buf, 0)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// Bytes returns the serialized tree.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	e.write(&buf, 0)
	return buf.Bytes()
}

func (e *Element) write(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if e.Text == "" && e.Raw == "" && len(e.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if e.Raw != "" {
		buf.WriteString("<![CDATA[")
		buf.WriteString(strings.ReplaceAll(e.Raw, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]>")
	}
	if e.Text != "" {
		xml.EscapeText(buf, []byte(e.Text))
	}
	if len(e.Children) == 0 {
		buf.WriteString("</" + e.Name + ">\n")
		return
	}

	buf.WriteByte('\n')
	for _, c := range e.Children {
		c.write(buf, depth+1)
	}
	buf.WriteString(indent)
	buf.WriteString("</" + e.Name + ">\n")
}

// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package markup parses manually error-annotated corpus text, both the
// inline Giella notation used in YAML test files and the XML form used in
// corpus files, and extracts expected error spans from it.
package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Element is one node in an annotation tree. Text is the content before the
// first child; Tail is the content following the element inside its parent,
// mirroring document order for mixed content.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Tail     string
	Children []*Element
}

// Attr returns the named attribute or an empty string.
func (e *Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, child := range e.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

// Iter visits e and every descendant in document order.
func (e *Element) Iter(visit func(*Element)) {
	visit(e)
	for _, child := range e.Children {
		child.Iter(visit)
	}
}

// Parse decodes an XML document into an Element tree, preserving mixed
// content as Text/Tail the way annotation processing needs it.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				if el.Attrs == nil {
					el.Attrs = make(map[string]string)
				}
				key := a.Name.Local
				if a.Name.Space != "" {
					key = a.Name.Space + ":" + a.Name.Local
				}
				el.Attrs[key] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing markup: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				cur.Children[len(cur.Children)-1].Tail += string(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parsing markup: unbalanced end element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing markup: empty document")
	}
	return root, nil
}

// ParseString decodes an XML fragment held in a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// WriteXML serializes the element tree back to XML.
func (e *Element) WriteXML(w io.Writer) error {
	if err := writeElement(w, e); err != nil {
		return err
	}
	return nil
}

func writeElement(w io.Writer, e *Element) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		xml.EscapeText(&b, []byte(e.Attrs[k])) //nolint:errcheck // strings.Builder never fails
		b.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if e.Text != "" || len(e.Children) > 0 {
		if err := writeEscaped(w, e.Text); err != nil {
			return err
		}
		for _, child := range e.Children {
			if err := writeElement(w, child); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "</%s>", e.Tag); err != nil {
			return err
		}
	}
	return writeEscaped(w, e.Tail)
}

func writeEscaped(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	var b strings.Builder
	xml.EscapeText(&b, []byte(s)) //nolint:errcheck // strings.Builder never fails
	_, err := io.WriteString(w, b.String())
	return err
}

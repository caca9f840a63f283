// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package markup

import (
	"fmt"
	"strings"
)

// markerTags maps the one-rune error markers of the inline Giella notation
// to their element tags. A marked-up segment has the shape
// {erroneous}MARKER{errorinfo|correction}, where the erroneous part may
// itself contain nested markup and corrections may be separated by "///".
var markerTags = map[rune]string{
	'$': "errorort",
	'¢': "errorortreal",
	'€': "errorlex",
	'£': "errormorphsyn",
	'¥': "errorsyn",
	'§': "error",
	'∞': "errorlang",
	'‰': "errorformat",
}

// ParseInline converts an inline-annotated test sentence into an element
// tree rooted at a "p" element, equivalent to the XML corpus form.
func ParseInline(text string) (*Element, error) {
	p := &inlineParser{runes: []rune(text)}
	root := &Element{Tag: "p"}
	if err := p.parseInto(root, false); err != nil {
		return nil, fmt.Errorf("inline markup %q: %w", text, err)
	}
	if p.pos < len(p.runes) {
		return nil, fmt.Errorf("inline markup %q: unexpected %q at offset %d", text, p.runes[p.pos], p.pos)
	}
	return root, nil
}

type inlineParser struct {
	runes []rune
	pos   int
}

// parseInto consumes runes into parent until end of input, or until an
// unmatched closing brace when insideBraces is set.
func (p *inlineParser) parseInto(parent *Element, insideBraces bool) error {
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		if len(parent.Children) == 0 {
			parent.Text += text.String()
		} else {
			parent.Children[len(parent.Children)-1].Tail += text.String()
		}
		text.Reset()
	}

	for p.pos < len(p.runes) {
		switch r := p.runes[p.pos]; r {
		case '}':
			if !insideBraces {
				return fmt.Errorf("unbalanced '}' at offset %d", p.pos)
			}
			flush()
			return nil
		case '{':
			flush()
			child, err := p.parseError()
			if err != nil {
				return err
			}
			parent.Children = append(parent.Children, child)
		default:
			text.WriteRune(r)
			p.pos++
		}
	}

	if insideBraces {
		return fmt.Errorf("missing '}'")
	}
	flush()
	return nil
}

// parseError consumes one {erroneous}MARKER{correction} expression.
func (p *inlineParser) parseError() (*Element, error) {
	p.pos++ // consume '{'
	el := &Element{}
	if err := p.parseInto(el, true); err != nil {
		return nil, err
	}
	p.pos++ // consume '}'

	if p.pos >= len(p.runes) {
		return nil, fmt.Errorf("missing error marker after '}'")
	}
	marker := p.runes[p.pos]
	tag, ok := markerTags[marker]
	if !ok {
		return nil, fmt.Errorf("unknown error marker %q at offset %d", marker, p.pos)
	}
	el.Tag = tag
	p.pos++

	if p.pos >= len(p.runes) || p.runes[p.pos] != '{' {
		return nil, fmt.Errorf("missing correction after %q marker", marker)
	}
	p.pos++
	correction, err := p.readCorrection()
	if err != nil {
		return nil, err
	}

	for _, part := range strings.Split(correction, "///") {
		correct := &Element{Tag: "correct"}
		if info, sug, found := strings.Cut(part, "|"); found {
			correct.Attrs = map[string]string{"errorinfo": info}
			correct.Text = sug
		} else {
			correct.Text = part
		}
		el.Children = append(el.Children, correct)
	}
	return el, nil
}

// readCorrection consumes the raw correction text up to the closing brace.
// Corrections cannot nest.
func (p *inlineParser) readCorrection() (string, error) {
	var b strings.Builder
	for p.pos < len(p.runes) {
		r := p.runes[p.pos]
		if r == '}' {
			p.pos++
			return b.String(), nil
		}
		b.WriteRune(r)
		p.pos++
	}
	return "", fmt.Errorf("missing '}' after correction")
}

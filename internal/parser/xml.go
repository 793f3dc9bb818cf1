package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/mcncl/treeval/internal/errors"
	"github.com/mcncl/treeval/internal/tree"
)

// ParseXML decodes one XML document from reader into an element tree.
// Namespace prefixes are kept as written; namespace declarations stay
// attributes. Comments, processing instructions and directives are dropped.
func ParseXML(reader io.Reader) (*tree.Element, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = true

	var (
		root  *tree.Element
		stack []*tree.Element
		texts []*strings.Builder
	)

	for {
		tok, err := decoder.RawToken()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, xmlError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, errors.NewParsingError(
					fmt.Sprintf("unexpected second root element <%s>", rawName(t.Name)),
					errors.ErrMultipleRoots,
				)
			}
			el := &tree.Element{Prefix: t.Name.Space, Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attrs = make([]tree.Attr, 0, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs = append(el.Attrs, tree.Attr{Prefix: a.Name.Space, Name: a.Name.Local, Value: a.Value})
				}
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.NewParsingError(
					fmt.Sprintf("unexpected end element </%s>", rawName(t.Name)),
					errors.ErrInvalidXML,
				)
			}
			top := stack[len(stack)-1]
			if top.Prefix != t.Name.Space || top.Name != t.Name.Local {
				return nil, errors.NewParsingError(
					fmt.Sprintf("element <%s> closed by </%s>", rawName(xml.Name{Space: top.Prefix, Local: top.Name}), rawName(t.Name)),
					errors.ErrInvalidXML,
				)
			}
			top.Text = texts[len(texts)-1].String()
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, errors.NewParsingError("character data outside the root element", errors.ErrInvalidXML)
				}
				continue
			}
			texts[len(texts)-1].Write(t)
		}
	}

	if root == nil {
		return nil, errors.NewParsingError("no root element found", errors.ErrEmptyInput)
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, errors.NewParsingError(
			fmt.Sprintf("element <%s> is never closed", rawName(xml.Name{Space: top.Prefix, Local: top.Name})),
			errors.ErrInvalidXML,
		)
	}
	return root, nil
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func xmlError(err error) error {
	var syntaxError *xml.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("XML syntax error on line %d: %s", syntaxError.Line, syntaxError.Msg),
			errors.ErrInvalidXML,
		)
	}
	return errors.NewParsingError(fmt.Sprintf("failed to decode XML: %v", err), errors.ErrInvalidXML)
}

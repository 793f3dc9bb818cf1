package parser

import (
	"encoding/json"
	"fmt"
	"io"

	stderrors "errors"

	"github.com/mcncl/treeval/internal/errors"
	"github.com/mcncl/treeval/internal/tree"
)

// ParseJSON decodes exactly one JSON value from reader into a tree. Object
// fields keep their order from the input; numbers are kept as json.Number.
func ParseJSON(reader io.Reader) (*tree.Node, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	root, err := decodeNode(decoder, true)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, jsonError(err)
	}

	// Anything but EOF after the first value is either a second value or garbage
	if tok, err := decoder.Token(); err == nil {
		return nil, errors.NewParsingError(fmt.Sprintf("multiple JSON values found at the root (next token %v)", tok), errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

func decodeNode(decoder *json.Decoder, top bool) (*tree.Node, error) {
	tok, err := decoder.Token()
	if err != nil {
		if !top && stderrors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			fields := make([]tree.Field, 0, 4)
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				child, err := decodeNode(decoder, false)
				if err != nil {
					return nil, err
				}
				fields = append(fields, tree.Field{Name: key, Value: child})
			}
			if err := expectDelim(decoder, '}'); err != nil {
				return nil, err
			}
			return tree.NewObject(fields...), nil
		case '[':
			items := make([]*tree.Node, 0, 4)
			for decoder.More() {
				child, err := decodeNode(decoder, false)
				if err != nil {
					return nil, err
				}
				items = append(items, child)
			}
			if err := expectDelim(decoder, ']'); err != nil {
				return nil, err
			}
			return tree.NewArray(items...), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case nil:
		return tree.NewNull(), nil
	default:
		// string, json.Number, bool
		return tree.NewScalar(t), nil
	}
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

func jsonError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError(fmt.Sprintf("failed to decode JSON: %v", err), errors.ErrInvalidJSON)
}

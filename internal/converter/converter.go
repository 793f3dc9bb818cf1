// Package converter maps JSON trees and XML element trees into the value
// model.
//
// JSON objects become contexts keyed by field name, arrays become lists, null
// becomes the null value and every other leaf is handed to the injected
// ScalarFunc. An XML document becomes a single-entry context keyed by the
// root's qualified name; each element becomes a context of its trimmed text
// ("$content"), its attributes ("@" + qualified name) and its children
// (qualified name), or null when it has none of them. Repeated keys inside
// one element overwrite earlier ones, so repeated sibling tags keep only the
// last element.
//
// A Converter holds no mutable state and is safe for concurrent use.
package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mcncl/treeval/internal/tree"
	"github.com/mcncl/treeval/internal/value"
)

// Priority is the position of the tree converter among value mappers.
// Generic mappers for plain Go values use lower numbers.
const Priority = 30

// DefaultMaxDepth bounds recursion over nested trees
const DefaultMaxDepth = 1000

// Keys used for XML elements
const (
	ContentKey         = "$content"
	AttributePrefix    = "@"
	NamespaceSeparator = "$"
)

var (
	// ErrUnsupportedNodeKind is returned for a JSON node whose kind is not
	// Object, Array, Null or Scalar, and for nil nodes inside a tree.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")
	// ErrTreeTooDeep is returned when a tree nests deeper than the
	// configured maximum depth.
	ErrTreeTooDeep = errors.New("tree too deep")
)

// ScalarFunc converts a raw JSON leaf into a value
type ScalarFunc func(raw any) (value.Value, error)

// Option configures a Converter
type Option func(*Converter)

// WithMaxDepth sets the maximum nesting depth. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		c.maxDepth = depth
	}
}

// Converter converts document trees into values
type Converter struct {
	scalar   ScalarFunc
	maxDepth int
}

// New creates a Converter delegating JSON leaves to scalar. A nil scalar
// uses DefaultScalar.
func New(scalar ScalarFunc, opts ...Option) *Converter {
	if scalar == nil {
		scalar = DefaultScalar
	}
	c := &Converter{
		scalar:   scalar,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Priority returns the converter's position among value mappers
func (c *Converter) Priority() int {
	return Priority
}

// ToValue converts x when it is a JSON node or an XML element. The boolean
// is false, with a nil error, for any other input so that another mapper
// can try it.
func (c *Converter) ToValue(x any) (value.Value, bool, error) {
	in := Classify(x)
	switch in.Kind {
	case JSONInput:
		v, err := c.ConvertJSON(in.JSON)
		return v, true, err
	case XMLInput:
		v, err := c.ConvertXML(in.XML)
		return v, true, err
	case Unsupported:
		return nil, false, nil
	default:
		panic(fmt.Sprintf("converter: unhandled input kind %s", in.Kind))
	}
}

// UnpackValue never matches: values are not converted back into trees.
func (c *Converter) UnpackValue(value.Value) (any, bool) {
	return nil, false
}

// ConvertJSON converts a JSON tree
func (c *Converter) ConvertJSON(node *tree.Node) (value.Value, error) {
	return c.jsonToValue(node, 1)
}

func (c *Converter) jsonToValue(node *tree.Node, depth int) (value.Value, error) {
	if err := c.checkDepth(depth); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.Wrapf(ErrUnsupportedNodeKind, "nil JSON node at depth %d", depth)
	}

	switch node.Kind {
	case tree.Object:
		ctx := value.NewContext(len(node.Fields))
		for _, f := range node.Fields {
			v, err := c.jsonToValue(f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			ctx.Set(f.Name, v)
		}
		return ctx, nil
	case tree.Array:
		list := make(value.List, 0, len(node.Items))
		for _, item := range node.Items {
			v, err := c.jsonToValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case tree.Null:
		return value.NullValue, nil
	case tree.Scalar:
		return c.scalar(node.Raw)
	default:
		return nil, errors.Wrapf(ErrUnsupportedNodeKind, "JSON node of kind %s", node.Kind)
	}
}

// ConvertXML converts an XML document rooted at root into a context with
// one entry: the root's qualified name mapped to the converted element.
func (c *Converter) ConvertXML(root *tree.Element) (value.Value, error) {
	if root == nil {
		return nil, errors.Wrap(ErrUnsupportedNodeKind, "nil XML root")
	}
	v, err := c.elementToValue(root, 1)
	if err != nil {
		return nil, err
	}
	ctx := value.NewContext(1)
	ctx.Set(QualifiedName(root.Prefix, root.Name), v)
	return ctx, nil
}

// ElementToValue converts one element without the root wrapping
func (c *Converter) ElementToValue(e *tree.Element) (value.Value, error) {
	if e == nil {
		return nil, errors.Wrap(ErrUnsupportedNodeKind, "nil XML element")
	}
	return c.elementToValue(e, 1)
}

func (c *Converter) elementToValue(e *tree.Element, depth int) (value.Value, error) {
	if err := c.checkDepth(depth); err != nil {
		return nil, err
	}

	members := value.NewContext(len(e.Attrs) + len(e.Children) + 1)

	if content := strings.TrimSpace(e.Text); content != "" {
		members.Set(ContentKey, value.String(content))
	}
	for _, attr := range e.Attrs {
		members.Set(AttributeKey(attr), value.String(attr.Value))
	}
	for _, child := range e.Children {
		if child == nil {
			return nil, errors.Wrapf(ErrUnsupportedNodeKind, "nil child of <%s>", QualifiedName(e.Prefix, e.Name))
		}
		v, err := c.elementToValue(child, depth+1)
		if err != nil {
			return nil, err
		}
		members.Set(QualifiedName(child.Prefix, child.Name), v)
	}

	if members.Len() == 0 {
		return value.NullValue, nil
	}
	return members, nil
}

func (c *Converter) checkDepth(depth int) error {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return errors.Wrapf(ErrTreeTooDeep, "depth exceeds %d", c.maxDepth)
	}
	return nil
}

// QualifiedName folds a namespace prefix into a name: prefix$name, or just
// name without a prefix.
func QualifiedName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + NamespaceSeparator + name
}

// AttributeKey returns the context key of an attribute
func AttributeKey(attr tree.Attr) string {
	return AttributePrefix + QualifiedName(attr.Prefix, attr.Name)
}

// DefaultScalar converts the leaf types produced by the JSON parser:
// strings, json.Number, float64 and bool. Nil maps to null.
func DefaultScalar(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.NullValue, nil
	case string:
		return value.String(v), nil
	case bool:
		return value.Bool(v), nil
	case json.Number:
		return value.Number(v.String()), nil
	case float64:
		return value.NumberFromFloat(v), nil
	case value.Value:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scalar of type %T", raw)
	}
}

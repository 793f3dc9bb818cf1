// Package tree holds the read-only document trees handed to the converter:
// JSON nodes and XML elements.
package tree

import "fmt"

// Kind is an enum for the shape of a JSON node
type Kind uint8

// Kinds to compare nodes with. The zero value signals invalid.
const (
	Invalid Kind = iota
	Object
	Array
	Null
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Object:
		return "Object"
	case Array:
		return "Array"
	case Null:
		return "Null"
	case Scalar:
		return "Scalar"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is one node of a JSON tree.
// Depending on its kind it holds a different payload:
//
//	Kind	Payload
//	Object	Fields
//	Array	Items
//	Null	-
//	Scalar	Raw (string, json.Number or bool)
type Node struct {
	Kind   Kind
	Fields []Field
	Items  []*Node
	Raw    any
}

// Field is a named member of an Object node
type Field struct {
	Name  string
	Value *Node
}

// NewObject creates an Object node from fields in declared order
func NewObject(fields ...Field) *Node {
	if fields == nil {
		fields = []Field{}
	}
	return &Node{Kind: Object, Fields: fields}
}

// NewArray creates an Array node
func NewArray(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{Kind: Array, Items: items}
}

// NewNull creates a Null node
func NewNull() *Node {
	return &Node{Kind: Null}
}

// NewScalar creates a Scalar node holding raw
func NewScalar(raw any) *Node {
	return &Node{Kind: Scalar, Raw: raw}
}

// FieldNames returns the field names of an Object in declared order.
// It is nil for any other kind.
func (n *Node) FieldNames() []string {
	if n == nil || n.Kind != Object {
		return nil
	}
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the last field named name. Duplicate names in an object
// resolve the same way a context does: the later one wins.
func (n *Node) Field(name string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for i := len(n.Fields) - 1; i >= 0; i-- {
		if n.Fields[i].Name == name {
			return n.Fields[i].Value, true
		}
	}
	return nil, false
}

// Len gives the number of items in an array or fields in an object
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case Object:
		return len(n.Fields)
	case Array:
		return len(n.Items)
	default:
		return 0
	}
}

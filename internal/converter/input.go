package converter

import (
	"fmt"

	"github.com/mcncl/treeval/internal/tree"
)

// InputKind tells which tree converter applies to an input
type InputKind uint8

const (
	Unsupported InputKind = iota
	JSONInput
	XMLInput
)

func (k InputKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case JSONInput:
		return "json"
	case XMLInput:
		return "xml"
	default:
		return fmt.Sprintf("InputKind(%d)", uint8(k))
	}
}

// Input is an input classified once at the dispatch boundary.
// Exactly one of JSON and XML is set unless Kind is Unsupported.
type Input struct {
	Kind InputKind
	JSON *tree.Node
	XML  *tree.Element
}

// Classify determines whether x is a JSON node or an XML element
func Classify(x any) Input {
	switch v := x.(type) {
	case *tree.Node:
		return Input{Kind: JSONInput, JSON: v}
	case tree.Node:
		return Input{Kind: JSONInput, JSON: &v}
	case *tree.Element:
		return Input{Kind: XMLInput, XML: v}
	case tree.Element:
		return Input{Kind: XMLInput, XML: &v}
	default:
		return Input{Kind: Unsupported}
	}
}

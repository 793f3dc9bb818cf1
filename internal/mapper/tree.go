package mapper

import (
	"github.com/mcncl/treeval/internal/converter"
	"github.com/mcncl/treeval/internal/value"
)

// Tree exposes the tree converter as a Mapper. JSON leaves are converted by
// the mapper chain the Tree is called from.
type Tree struct {
	opts []converter.Option
}

// NewTree creates a Tree mapper; opts configure each conversion
func NewTree(opts ...converter.Option) *Tree {
	return &Tree{opts: opts}
}

// Priority implements Mapper
func (t *Tree) Priority() int { return converter.Priority }

// ToValue implements Mapper. It declines anything but JSON nodes and XML
// elements.
func (t *Tree) ToValue(x any, inner Func) (value.Value, bool, error) {
	if converter.Classify(x).Kind == converter.Unsupported {
		return nil, false, nil
	}
	c := converter.New(converter.ScalarFunc(inner), t.opts...)
	return c.ToValue(x)
}

// UnpackValue implements Mapper; values are never turned back into trees
func (t *Tree) UnpackValue(value.Value, UnpackFunc) (any, bool, error) {
	return nil, false, nil
}

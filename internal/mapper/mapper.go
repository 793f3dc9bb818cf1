// Package mapper dispatches Go values to value mappers in priority order.
// The tree converter is one mapper among others; a generic mapper for plain
// Go values handles scalars and everything the converter declines.
package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcncl/treeval/internal/value"
)

// ErrNoMapper is returned when no registered mapper accepts an input
var ErrNoMapper = errors.New("no value mapper accepts input")

// Func converts any input into a value using the full mapper chain
type Func func(x any) (value.Value, error)

// UnpackFunc converts a value back into a Go value using the full mapper chain
type UnpackFunc func(v value.Value) (any, error)

// Mapper converts Go values into values and back. A mapper returns false,
// with a nil error, for inputs it does not handle.
type Mapper interface {
	ToValue(x any, inner Func) (value.Value, bool, error)
	UnpackValue(v value.Value, inner UnpackFunc) (any, bool, error)
	Priority() int
}

// Composite tries its mappers from the highest priority to the lowest and
// uses the first one that accepts an input. Mappers with equal priority keep
// their registration order.
type Composite struct {
	mappers []Mapper
	logger  *slog.Logger
}

// NewComposite creates a Composite over mappers. A nil logger discards
// records.
func NewComposite(logger *slog.Logger, mappers ...Mapper) *Composite {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sorted := make([]Mapper, len(mappers))
	copy(sorted, mappers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Composite{mappers: sorted, logger: logger}
}

// Mappers returns the mappers in the order they are consulted
func (c *Composite) Mappers() []Mapper {
	out := make([]Mapper, len(c.mappers))
	copy(out, c.mappers)
	return out
}

// ToValue converts x with the first mapper that accepts it. Nil is always
// the null value.
func (c *Composite) ToValue(x any) (value.Value, error) {
	if x == nil {
		return value.NullValue, nil
	}
	for _, m := range c.mappers {
		v, ok, err := m.ToValue(x, c.ToValue)
		if err != nil {
			return nil, fmt.Errorf("%T: %w", m, err)
		}
		if ok {
			c.logger.Debug("mapped value",
				slog.String("input", fmt.Sprintf("%T", x)),
				slog.String("mapper", fmt.Sprintf("%T", m)),
				slog.Int("priority", m.Priority()),
				slog.String("kind", string(v.Kind())))
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrNoMapper, x)
}

// UnpackValue converts v back into a Go value with the first mapper that
// accepts it.
func (c *Composite) UnpackValue(v value.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	for _, m := range c.mappers {
		out, ok, err := m.UnpackValue(v, c.UnpackValue)
		if err != nil {
			return nil, fmt.Errorf("%T: %w", m, err)
		}
		if ok {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMapper, v.Kind())
}

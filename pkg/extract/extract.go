package extract

import (
	"fmt"
	"iter"
)

// Shape tells the engine how an extractor hands out inner values.
type Shape uint8

const (
	// Optional wraps zero or one value and adds no path node.
	Optional Shape = iota + 1
	// Indexed yields elements with integer positions.
	Indexed
	// Keyed yields entries with keys.
	Keyed
	// Deferred holds a single value that becomes available later.
	Deferred
	// Stream emits a sequence of values over time.
	Stream
)

func (s Shape) String() string {
	switch s {
	case Optional:
		return "optional"
	case Indexed:
		return "indexed"
	case Keyed:
		return "keyed"
	case Deferred:
		return "deferred"
	case Stream:
		return "stream"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// IsAsync reports whether values of this shape are validated by interception.
func (s Shape) IsAsync() bool {
	return s == Deferred || s == Stream
}

// Item is one inner value of a container.
type Item struct {
	Value any

	Index    int
	HasIndex bool

	Key    any
	HasKey bool
}

// Extractor recognises one family of containers.
type Extractor interface {
	Shape() Shape
	Supports(v any) bool
}

// Unwrapper is implemented by Optional extractors.
type Unwrapper interface {
	Extractor
	Unwrap(v any) (inner any, present bool, err error)
}

// Iterable is implemented by Indexed and Keyed extractors. Items must be
// yielded in a deterministic order.
type Iterable interface {
	Extractor
	Extract(v any) iter.Seq[Item]
}

// Interceptor is implemented by Deferred and Stream extractors. Intercept
// returns a replacement container that runs check on every value as it
// becomes available and fails with the error check returns.
type Interceptor interface {
	Extractor
	Intercept(v any, check func(Item) error) any
}

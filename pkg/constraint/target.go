package constraint

import (
	"reflect"
	"slices"
	"strings"
)

// Target selects the values a validator unit accepts. Targets are ranked by
// specificity; the highest ranked matching unit checks the value.
type Target struct {
	rank  int
	name  string
	typ   reflect.Type
	kinds []reflect.Kind
}

// Ranks, from least to most specific.
const (
	RankAny = iota
	RankInterface
	RankKind
	RankType
)

// Any accepts every value. It is the only target invoked for nil values.
func Any() Target {
	return Target{rank: RankAny, name: "any"}
}

// Implements accepts values whose type implements the interface I.
func Implements[I any]() Target {
	typ := reflect.TypeFor[I]()
	if typ.Kind() != reflect.Interface {
		return TypeOf[I]()
	}
	return Target{rank: RankInterface, name: "implements " + typ.String(), typ: typ}
}

// Kinds accepts values of the given reflect kinds.
func Kinds(kinds ...reflect.Kind) Target {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return Target{rank: RankKind, name: "kinds " + strings.Join(names, "|"), kinds: slices.Clone(kinds)}
}

// TypeOf accepts values of exactly type T or *T.
func TypeOf[T any]() Target {
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Interface {
		return Implements[T]()
	}
	return Target{rank: RankType, name: "type " + typ.String(), typ: typ}
}

// Rank returns the specificity of the target.
func (t Target) Rank() int { return t.rank }

// String implements fmt.Stringer.
func (t Target) String() string { return t.name }

// Matches reports whether a value of dynamic type typ is accepted.
// A nil typ stands for a nil value.
func (t Target) Matches(typ reflect.Type) bool {
	if typ == nil {
		return t.rank == RankAny
	}
	switch t.rank {
	case RankAny:
		return true
	case RankInterface:
		return typ.Implements(t.typ)
	case RankKind:
		return slices.Contains(t.kinds, typ.Kind())
	case RankType:
		return typ == t.typ || (typ.Kind() == reflect.Pointer && typ.Elem() == t.typ)
	}
	return false
}

// overlaps reports whether two targets of the same rank can both match one
// value type for certain. Interface targets are only compared by identity
// because overlap depends on the concrete types checked later.
func (t Target) overlaps(o Target) bool {
	if t.rank != o.rank {
		return false
	}
	switch t.rank {
	case RankAny:
		return true
	case RankInterface, RankType:
		return t.typ == o.typ
	case RankKind:
		for _, k := range t.kinds {
			if slices.Contains(o.kinds, k) {
				return true
			}
		}
	}
	return false
}

func targetFor[T any]() Target {
	typ := reflect.TypeFor[T]()
	switch {
	case typ.Kind() == reflect.Interface && typ.NumMethod() == 0:
		return Any()
	case typ.Kind() == reflect.Interface:
		return Implements[T]()
	default:
		return TypeOf[T]()
	}
}

package extract

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// DeferredValue is implemented by single-value async containers such as
// *async.Future.
type DeferredValue interface {
	InterceptAny(check func(any) error) any
}

// StreamValue is implemented by multi-value async containers such as
// *broadcast.Stream.
type StreamValue interface {
	InterceptEach(check func(index int, value any) error) any
}

// Getter is implemented by optional-like wrappers.
type Getter interface {
	Get() (any, bool)
}

// Defaults returns the built-in extractors in precedence order.
func Defaults() []Extractor {
	return []Extractor{
		DeferredExtractor{},
		StreamExtractor{},
		MapExtractor{},
		SliceExtractor{},
		OptionalExtractor{},
	}
}

// DeferredExtractor handles DeferredValue containers.
type DeferredExtractor struct{}

func (DeferredExtractor) Shape() Shape { return Deferred }

func (DeferredExtractor) Supports(v any) bool {
	_, ok := v.(DeferredValue)
	return ok
}

func (DeferredExtractor) Intercept(v any, check func(Item) error) any {
	return v.(DeferredValue).InterceptAny(func(value any) error {
		return check(Item{Value: value})
	})
}

// StreamExtractor handles StreamValue containers.
type StreamExtractor struct{}

func (StreamExtractor) Shape() Shape { return Stream }

func (StreamExtractor) Supports(v any) bool {
	_, ok := v.(StreamValue)
	return ok
}

func (StreamExtractor) Intercept(v any, check func(Item) error) any {
	return v.(StreamValue).InterceptEach(func(index int, value any) error {
		return check(Item{Value: value, Index: index, HasIndex: true})
	})
}

// MapExtractor yields map entries ordered by key.
type MapExtractor struct{}

func (MapExtractor) Shape() Shape { return Keyed }

func (MapExtractor) Supports(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

func (MapExtractor) Extract(v any) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		rv := reflect.ValueOf(v)
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)
		for _, k := range keys {
			if !yield(Item{Key: k.Interface(), HasKey: true, Value: rv.MapIndex(k).Interface()}) {
				return
			}
		}
	}
}

// compareKeys orders map keys. Keys held in interfaces are ordered by
// dynamic type first, with nil before everything else.
func compareKeys(a, b reflect.Value) int {
	a, b = dynamic(a), dynamic(b)
	switch {
	case !a.IsValid() || !b.IsValid():
		return cmp.Compare(boolRank(a.IsValid()), boolRank(b.IsValid()))
	case a.Type() != b.Type():
		if c := cmp.Compare(a.Type().String(), b.Type().String()); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	default:
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}

func dynamic(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SliceExtractor yields slice and array elements. Byte slices are values,
// not containers.
type SliceExtractor struct{}

func (SliceExtractor) Shape() Shape { return Indexed }

func (SliceExtractor) Supports(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

func (SliceExtractor) Extract(v any) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		rv := reflect.ValueOf(v)
		for i := range rv.Len() {
			if !yield(Item{Index: i, HasIndex: true, Value: rv.Index(i).Interface()}) {
				return
			}
		}
	}
}

// OptionalExtractor unwraps Getter values and the database/sql null types.
type OptionalExtractor struct{}

func (OptionalExtractor) Shape() Shape { return Optional }

func (OptionalExtractor) Supports(v any) bool {
	if _, ok := v.(Getter); ok {
		return true
	}
	return isSQLValuer(v)
}

func (OptionalExtractor) Unwrap(v any) (any, bool, error) {
	if g, ok := v.(Getter); ok {
		inner, present := g.Get()
		return inner, present, nil
	}
	inner, err := v.(driver.Valuer).Value()
	if err != nil {
		return nil, false, err
	}
	return inner, inner != nil, nil
}

func isSQLValuer(v any) bool {
	if _, ok := v.(driver.Valuer); !ok {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() == "database/sql"
}

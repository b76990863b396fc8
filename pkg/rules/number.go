package rules

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metadata"
)

var numericKinds = []reflect.Kind{
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
	reflect.Float32, reflect.Float64,
}

type numClass uint8

const (
	signed numClass = iota
	unsigned
	float
)

// number keeps integers exact. Integer and float operands are compared as
// big.Float so that values beyond 2^53 keep their precision.
type number struct {
	class numClass
	i     int64
	u     uint64
	f     float64
}

func toNumber(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{class: signed, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{class: unsigned, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{class: float, f: rv.Float()}, true
	}
	return number{}, false
}

func (n number) float64() float64 {
	switch n.class {
	case signed:
		return float64(n.i)
	case unsigned:
		return float64(n.u)
	}
	return n.f
}

func (n number) isNaN() bool {
	return n.class == float && math.IsNaN(n.f)
}

func (n number) sign() int {
	switch n.class {
	case signed:
		return cmp.Compare(n.i, 0)
	case unsigned:
		return cmp.Compare(n.u, 0)
	}
	return cmp.Compare(n.f, 0)
}

func compareNumbers(a, b number) int {
	switch {
	case a.class == signed && b.class == signed:
		return cmp.Compare(a.i, b.i)
	case a.class == unsigned && b.class == unsigned:
		return cmp.Compare(a.u, b.u)
	case a.class == signed && b.class == unsigned:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	case a.class == unsigned && b.class == signed:
		return -compareNumbers(b, a)
	case a.class == float && b.class == float, a.isNaN(), b.isNaN():
		return cmp.Compare(a.float64(), b.float64())
	}
	return a.exact().Cmp(b.exact())
}

// exact returns n as a big.Float. n must not be NaN.
func (n number) exact() *big.Float {
	switch n.class {
	case signed:
		return new(big.Float).SetInt64(n.i)
	case unsigned:
		return new(big.Float).SetUint64(n.u)
	}
	return big.NewFloat(n.f)
}

func numberAttr(d metadata.Descriptor, name string) (number, error) {
	raw, ok := d.Attribute(name)
	if !ok {
		return number{}, fmt.Errorf("%w: %s requires %q", ErrInvalidAttribute, d.Kind, name)
	}
	n, ok := toNumber(raw)
	if !ok || n.isNaN() {
		return number{}, fmt.Errorf("%w: %s.%s is %T, not a number", ErrInvalidAttribute, d.Kind, name, raw)
	}
	return n, nil
}

func intAttr(d metadata.Descriptor, name string, def int) (int, error) {
	raw, ok := d.Attribute(name)
	if !ok {
		return def, nil
	}
	n, ok := toNumber(raw)
	if !ok || n.class == float {
		return 0, fmt.Errorf("%w: %s.%s is %T, not an integer", ErrInvalidAttribute, d.Kind, name, raw)
	}
	if n.class == unsigned {
		if n.u > math.MaxInt {
			return math.MaxInt, nil
		}
		return int(n.u), nil
	}
	return int(n.i), nil
}

// bound builds min and max units.
func bound(accept func(c int) bool) constraint.Func {
	return func(value any, d metadata.Descriptor, _ *constraint.Context) (bool, error) {
		limit, err := numberAttr(d, AttrValue)
		if err != nil {
			return false, err
		}
		n, ok := toNumber(value)
		if !ok {
			return false, fmt.Errorf("%w: %T", ErrNotComparable, value)
		}
		if n.isNaN() {
			return false, nil
		}
		return accept(compareNumbers(n, limit)), nil
	}
}

// signum builds the positive and negative family.
func signum(accept func(s int) bool) constraint.Func {
	return func(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
		n, ok := toNumber(value)
		if !ok {
			return false, fmt.Errorf("%w: %T", ErrNotComparable, value)
		}
		if n.isNaN() {
			return false, nil
		}
		return accept(n.sign()), nil
	}
}

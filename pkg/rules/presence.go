package rules

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metadata"
)

func notNull(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return value != nil, nil
}

func isNull(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return value == nil, nil
}

func notBlankString(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return strings.TrimSpace(reflect.ValueOf(value).String()) != "", nil
}

func notBlankStringer(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return strings.TrimSpace(value.(fmt.Stringer).String()) != "", nil
}

func notEmpty(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return reflect.ValueOf(value).Len() > 0, nil
}

func size(value any, d metadata.Descriptor, _ *constraint.Context) (bool, error) {
	lo, err := intAttr(d, AttrMin, 0)
	if err != nil {
		return false, err
	}
	hi, err := intAttr(d, AttrMax, math.MaxInt)
	if err != nil {
		return false, err
	}
	if lo < 0 || hi < lo {
		return false, fmt.Errorf("%w: size bounds [%d, %d]", ErrInvalidAttribute, lo, hi)
	}

	rv := reflect.ValueOf(value)
	n := 0
	if rv.Kind() == reflect.String {
		n = utf8.RuneCountInString(rv.String())
	} else {
		n = rv.Len()
	}
	return n >= lo && n <= hi, nil
}

func assertBool(want bool) constraint.Func {
	return func(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
		return reflect.ValueOf(value).Bool() == want, nil
	}
}

func oneOf(value any, d metadata.Descriptor, _ *constraint.Context) (bool, error) {
	if value == nil {
		return true, nil
	}
	raw, ok := d.Attribute(AttrValues)
	if !ok {
		return false, fmt.Errorf("%w: one_of requires %q", ErrInvalidAttribute, AttrValues)
	}
	candidates := reflect.ValueOf(raw)
	if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
		return false, fmt.Errorf("%w: one_of.%s is %T, not a list", ErrInvalidAttribute, AttrValues, raw)
	}
	for i := range candidates.Len() {
		if equalValues(value, candidates.Index(i).Interface()) {
			return true, nil
		}
	}
	return false, nil
}

// equalValues compares across named types: a Status("active") equals "active"
// and int8(1) equals 1.
func equalValues(a, b any) bool {
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return compareNumbers(na, nb) == 0
		}
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return ra.String() == rb.String()
	}
	if ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool {
		return ra.Bool() == rb.Bool()
	}
	return reflect.DeepEqual(a, b)
}

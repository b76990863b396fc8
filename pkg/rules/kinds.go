package rules

import (
	"slices"

	"github.com/dmitrymomot/validation/pkg/metadata"
)

// Constraint kinds provided by this package.
const (
	KindNotNull        = "not_null"
	KindNull           = "null"
	KindNotBlank       = "not_blank"
	KindNotEmpty       = "not_empty"
	KindSize           = "size"
	KindMin            = "min"
	KindMax            = "max"
	KindPositive       = "positive"
	KindPositiveOrZero = "positive_or_zero"
	KindNegative       = "negative"
	KindNegativeOrZero = "negative_or_zero"
	KindPattern        = "pattern"
	KindEmail          = "email"
	KindURL            = "url"
	KindUUID           = "uuid"
	KindTag            = "tag"
	KindExpression     = "expression"
	KindAssertTrue     = "assert_true"
	KindAssertFalse    = "assert_false"
	KindPast           = "past"
	KindFuture         = "future"
	KindOneOf          = "one_of"
)

// Attribute names read by the built-in units.
const (
	AttrMin        = "min"
	AttrMax        = "max"
	AttrValue      = "value"
	AttrRegexp     = "regexp"
	AttrTag        = "tag"
	AttrExpression = "expression"
	AttrValues     = "values"
)

func NotNull() metadata.Descriptor  { return metadata.NewDescriptor(KindNotNull, nil) }
func Null() metadata.Descriptor     { return metadata.NewDescriptor(KindNull, nil) }
func NotBlank() metadata.Descriptor { return metadata.NewDescriptor(KindNotBlank, nil) }
func NotEmpty() metadata.Descriptor { return metadata.NewDescriptor(KindNotEmpty, nil) }

// Size bounds the length of strings (in runes), slices, arrays and maps.
// Both bounds are inclusive.
func Size(min, max int) metadata.Descriptor {
	return metadata.NewDescriptor(KindSize, map[string]any{AttrMin: min, AttrMax: max})
}

// Min requires a number greater than or equal to value.
func Min(value any) metadata.Descriptor {
	return metadata.NewDescriptor(KindMin, map[string]any{AttrValue: value})
}

// Max requires a number less than or equal to value.
func Max(value any) metadata.Descriptor {
	return metadata.NewDescriptor(KindMax, map[string]any{AttrValue: value})
}

func Positive() metadata.Descriptor       { return metadata.NewDescriptor(KindPositive, nil) }
func PositiveOrZero() metadata.Descriptor { return metadata.NewDescriptor(KindPositiveOrZero, nil) }
func Negative() metadata.Descriptor       { return metadata.NewDescriptor(KindNegative, nil) }
func NegativeOrZero() metadata.Descriptor { return metadata.NewDescriptor(KindNegativeOrZero, nil) }

// Pattern requires the whole string to match the regular expression.
func Pattern(regexp string) metadata.Descriptor {
	return metadata.NewDescriptor(KindPattern, map[string]any{AttrRegexp: regexp})
}

func Email() metadata.Descriptor { return metadata.NewDescriptor(KindEmail, nil) }
func URL() metadata.Descriptor   { return metadata.NewDescriptor(KindURL, nil) }
func UUID() metadata.Descriptor  { return metadata.NewDescriptor(KindUUID, nil) }

// Tag checks the value with a go-playground/validator tag such as "required,min=3".
func Tag(tag string) metadata.Descriptor {
	return metadata.NewDescriptor(KindTag, map[string]any{AttrTag: tag})
}

// Expression checks the value with a CEL expression evaluating to a bool.
// The checked value is bound to the variable "value".
func Expression(expr string) metadata.Descriptor {
	return metadata.NewDescriptor(KindExpression, map[string]any{AttrExpression: expr})
}

func AssertTrue() metadata.Descriptor  { return metadata.NewDescriptor(KindAssertTrue, nil) }
func AssertFalse() metadata.Descriptor { return metadata.NewDescriptor(KindAssertFalse, nil) }
func Past() metadata.Descriptor        { return metadata.NewDescriptor(KindPast, nil) }
func Future() metadata.Descriptor      { return metadata.NewDescriptor(KindFuture, nil) }

// OneOf requires the value to equal one of values.
func OneOf(values ...any) metadata.Descriptor {
	return metadata.NewDescriptor(KindOneOf, map[string]any{AttrValues: slices.Clone(values)})
}

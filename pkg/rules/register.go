package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/cel-go/cel"
	"github.com/hashicorp/go-multierror"

	"github.com/dmitrymomot/validation/pkg/cache"
	"github.com/dmitrymomot/validation/pkg/constraint"
)

// Option configures the built-in units.
type Option func(*options)

type options struct {
	cacheSize int
	now       func() time.Time
	validate  *validator.Validate
}

// WithCacheSize bounds the compiled pattern and expression caches.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithClock replaces time.Now for past and future.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithValidate supplies the go-playground validator used by email, url and
// tag, e.g. one with custom tags registered.
func WithValidate(v *validator.Validate) Option {
	return func(o *options) {
		if v != nil {
			o.validate = v
		}
	}
}

// set holds the state shared by the units of one Register call.
type set struct {
	now      func() time.Time
	validate *validator.Validate
	env      *cel.Env
	patterns *cache.LRU[string, *regexp.Regexp]
	programs *cache.LRU[string, cel.Program]
}

type unit struct {
	kind   string
	target constraint.Target
	fn     constraint.Func
}

var (
	stringKind    = constraint.Kinds(reflect.String)
	stringer      = constraint.Implements[fmt.Stringer]()
	containerKind = constraint.Kinds(reflect.Slice, reflect.Array, reflect.Map)
	numberKind    = constraint.Kinds(numericKinds...)
	boolKind      = constraint.Kinds(reflect.Bool)
)

func (s *set) units() []unit {
	return []unit{
		{KindNotNull, constraint.Any(), notNull},
		{KindNull, constraint.Any(), isNull},

		{KindNotBlank, constraint.Any(), notNull},
		{KindNotBlank, stringer, notBlankStringer},
		{KindNotBlank, stringKind, notBlankString},

		{KindNotEmpty, constraint.Any(), notNull},
		{KindNotEmpty, constraint.Kinds(reflect.String, reflect.Slice, reflect.Array, reflect.Map), notEmpty},

		{KindSize, stringKind, size},
		{KindSize, containerKind, size},

		{KindMin, numberKind, bound(func(c int) bool { return c >= 0 })},
		{KindMax, numberKind, bound(func(c int) bool { return c <= 0 })},
		{KindPositive, numberKind, signum(func(s int) bool { return s > 0 })},
		{KindPositiveOrZero, numberKind, signum(func(s int) bool { return s >= 0 })},
		{KindNegative, numberKind, signum(func(s int) bool { return s < 0 })},
		{KindNegativeOrZero, numberKind, signum(func(s int) bool { return s <= 0 })},

		{KindPattern, stringKind, s.pattern},
		{KindPattern, stringer, s.pattern},
		{KindEmail, stringKind, s.tagged("email")},
		{KindURL, stringKind, s.tagged("url")},
		{KindUUID, stringKind, isUUID},
		{KindTag, constraint.Any(), s.tag},
		{KindExpression, constraint.Any(), s.expression},

		{KindAssertTrue, boolKind, assertBool(true)},
		{KindAssertFalse, boolKind, assertBool(false)},
		{KindOneOf, constraint.Any(), oneOf},
	}
}

// Register adds every built-in unit to reg. All registration problems are
// reported together.
func Register(reg *constraint.Registry, opts ...Option) error {
	o := options{
		cacheSize: cache.DefaultCapacity,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validate == nil {
		o.validate = validator.New(validator.WithRequiredStructEnabled())
	}

	env, err := newExpressionEnv()
	if err != nil {
		return err
	}
	s := &set{
		now:      o.now,
		validate: o.validate,
		env:      env,
		patterns: cache.NewLRU[string, *regexp.Regexp](o.cacheSize),
		programs: cache.NewLRU[string, cel.Program](o.cacheSize),
	}

	var result *multierror.Error
	for _, u := range s.units() {
		if err := reg.Register(u.kind, u.target, u.fn); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := constraint.RegisterFunc(reg, KindPast, s.past); err != nil {
		result = multierror.Append(result, err)
	}
	if err := constraint.RegisterFunc(reg, KindFuture, s.future); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Kinds lists the constraint kinds Register provides.
func Kinds() []string {
	return []string{
		KindNotNull, KindNull, KindNotBlank, KindNotEmpty, KindSize,
		KindMin, KindMax, KindPositive, KindPositiveOrZero, KindNegative, KindNegativeOrZero,
		KindPattern, KindEmail, KindURL, KindUUID, KindTag, KindExpression,
		KindAssertTrue, KindAssertFalse, KindPast, KindFuture, KindOneOf,
	}
}

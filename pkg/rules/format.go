package rules

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metadata"
)

// text returns the string form of a string kind or a fmt.Stringer.
func text(value any) string {
	if s, ok := value.(fmt.Stringer); ok {
		if rv := reflect.ValueOf(value); rv.Kind() != reflect.String {
			return s.String()
		}
	}
	return reflect.ValueOf(value).String()
}

func (s *set) pattern(value any, d metadata.Descriptor, _ *constraint.Context) (bool, error) {
	expr, ok := d.Attributes[AttrRegexp].(string)
	if !ok {
		return false, fmt.Errorf("%w: pattern requires a string %q", ErrInvalidAttribute, AttrRegexp)
	}
	re, err := s.patterns.GetOrCreate(expr, func() (*regexp.Regexp, error) {
		re, err := regexp.Compile(`^(?:` + expr + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, expr, err)
		}
		return re, nil
	})
	if err != nil {
		return false, err
	}
	return re.MatchString(text(value)), nil
}

// tagged builds units delegating to a fixed validator tag. Empty strings are
// left to not_blank and not_empty.
func (s *set) tagged(tag string) constraint.Func {
	return func(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
		str := text(value)
		if str == "" {
			return true, nil
		}
		return s.checkVar(str, tag)
	}
}

func (s *set) tag(value any, d metadata.Descriptor, _ *constraint.Context) (bool, error) {
	tag, ok := d.Attributes[AttrTag].(string)
	if !ok || tag == "" {
		return false, fmt.Errorf("%w: tag requires a non-empty %q", ErrInvalidAttribute, AttrTag)
	}
	return s.checkVar(value, tag)
}

// checkVar reports validation failures as false and anything else as an
// error. The validator panics on unknown tags; that is a configuration error
// of the descriptor, not of the process.
func (s *set) checkVar(value any, tag string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("%w %q: %v", ErrInvalidTag, tag, r)
		}
	}()

	err = s.validate.Var(value, tag)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return false, nil
	}
	return false, fmt.Errorf("%w %q: %w", ErrInvalidTag, tag, err)
}

func isUUID(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	str := text(value)
	if str == "" {
		return true, nil
	}
	_, err := uuid.Parse(str)
	return err == nil, nil
}

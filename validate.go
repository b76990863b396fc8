package validation

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/path"
)

// Validate validates value and everything reachable from it through
// cascaded elements. The returned error is a *ConfigurationError or an
// *ExecutionError; violations are never reported through it.
func (v *Validator) Validate(ctx context.Context, value any, opts ...CallOption) (Violations, error) {
	value = indirect(value)
	if value == nil {
		return nil, ErrNilValue
	}
	b, ok := v.beans.LookupValue(value)
	if !ok {
		return nil, &ConfigurationError{Type: reflect.TypeOf(value), Err: ErrMissingMetadata}
	}

	c := v.newCall(ctx, value, opts)
	c.visit(value, b)
	if err := c.bean(value, b, path.Path{}); err != nil {
		return nil, err
	}
	v.done(c)
	return c.out, nil
}

// ValidateProperty validates the named property of bean, cascading below it.
// Class-level constraints of bean are not checked.
func (v *Validator) ValidateProperty(ctx context.Context, bean any, name string, opts ...CallOption) (Violations, error) {
	bean = indirect(bean)
	if bean == nil {
		return nil, ErrNilValue
	}
	b, ok := v.beans.LookupValue(bean)
	if !ok {
		return nil, &ConfigurationError{Type: reflect.TypeOf(bean), Err: ErrMissingMetadata}
	}
	prop, ok := b.Property(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, b.Name(), name)
	}

	c := v.newCall(ctx, bean, opts)
	c.visit(bean, b)
	if err := c.enter(prop.Get(bean), prop, path.Path{}.Property(name), bean); err != nil {
		return nil, err
	}
	v.done(c)
	return c.out, nil
}

// ValidateValue checks whether value would be valid for the named property
// of beanType. Constraints on the property and its container elements are
// checked; nested beans are not cascaded into.
func (v *Validator) ValidateValue(ctx context.Context, beanType reflect.Type, name string, value any, opts ...CallOption) (Violations, error) {
	b, ok := v.beans.Lookup(beanType)
	if !ok {
		return nil, &ConfigurationError{Type: beanType, Err: ErrMissingMetadata}
	}
	prop, ok := b.Property(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, b.Name(), name)
	}

	c := v.newCall(ctx, nil, opts)
	c.noCascade = true
	if err := c.enter(value, prop, path.Path{}.Property(name), nil); err != nil {
		return nil, err
	}
	v.done(c)
	return c.out, nil
}

func (v *Validator) done(c *call) {
	if len(c.out) > 0 {
		v.logger.DebugContext(c.ctx, "validation finished", logger.Violations(len(c.out)), logger.Locale(c.locale))
	}
}

package validation

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/dmitrymomot/validation/pkg/extract"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/path"
)

// ValidateParameters validates args against the parameters of the named
// method or constructor. target is the receiver, or the bean's reflect.Type
// for constructors.
//
// An async argument (a future or a stream) whose element type is constrained
// cannot be checked yet. It is replaced in args by a wrapper that validates
// every value as it becomes available and fails with Violations or the
// execution error. Callers must pass the replaced arguments on. args is
// left untouched when an error is returned.
func (v *Validator) ValidateParameters(ctx context.Context, target any, name string, args []any, opts ...CallOption) (Violations, error) {
	root, m, base, err := v.executable(target, name)
	if err != nil {
		return nil, err
	}
	params := m.Parameters()
	if len(args) != len(params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, name, len(params), len(args))
	}

	c := v.newCall(ctx, root, opts)
	c.executable = name
	c.args = slices.Clone(args)

	replaced := make([]any, len(args))
	for i, param := range params {
		replaced[i], err = c.executableValue(args[i], param, base.Parameter(param.Name(), i))
		if err != nil {
			return nil, err
		}
	}
	if err := c.checkAll(c.args, m.CrossParameterConstraints(), base.CrossParameter(), nil); err != nil {
		return nil, err
	}
	copy(args, replaced)
	v.done(c)
	return c.out, nil
}

// ValidateReturnValue validates the value returned by the named method or
// constructor. The returned value is the one to hand to the caller: value
// itself, or a validating wrapper when value is an async container.
func (v *Validator) ValidateReturnValue(ctx context.Context, target any, name string, value any, opts ...CallOption) (any, Violations, error) {
	root, m, base, err := v.executable(target, name)
	if err != nil {
		return value, nil, err
	}
	elem := m.ReturnValue()
	if !elem.IsConstrained() {
		return value, nil, nil
	}

	c := v.newCall(ctx, root, opts)
	c.executable = name
	replaced, err := c.executableValue(value, elem, base.ReturnValue())
	if err != nil {
		return value, nil, err
	}
	v.done(c)
	return replaced, c.out, nil
}

func (v *Validator) executable(target any, name string) (any, *metadata.Method, path.Path, error) {
	typ, isType := target.(reflect.Type)
	if !isType {
		target = indirect(target)
		typ = reflect.TypeOf(target)
	} else {
		target = nil
	}
	if typ == nil {
		return nil, nil, path.Path{}, ErrNilValue
	}

	b, ok := v.beans.Lookup(typ)
	if !ok {
		return nil, nil, path.Path{}, &ConfigurationError{Type: typ, Err: ErrMissingMetadata}
	}
	if m, ok := b.Method(name); ok {
		return target, m, path.Path{}.Method(name), nil
	}
	if m, ok := b.Constructor(name); ok {
		return target, m, path.Path{}.Constructor(name), nil
	}
	return nil, nil, path.Path{}, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, b.Name(), name)
}

// executableValue validates a parameter or return value. Async containers get
// their own constraints checked now and their elements intercepted.
func (c *call) executableValue(value any, elem *metadata.Element, p path.Path) (any, error) {
	if !elem.IsConstrained() {
		return value, nil
	}

	container := indirect(value)
	ex, ok := c.v.extractors.Find(container)
	if !ok || !ex.Shape().IsAsync() {
		return value, c.enter(value, elem, p, nil)
	}

	if err := c.checkAll(container, elem.Constraints(), p, nil); err != nil {
		return value, err
	}
	itemArg := elem.ItemArgument(metadata.ElementArgument)
	if !itemArg.IsConstrained() {
		return value, nil
	}
	return c.intercept(container, ex.(extract.Interceptor), itemArg, p), nil
}

// intercept wraps an async container so every value it produces is
// validated on arrival. The check runs on whatever goroutine delivers the
// value, so it works on a private fork of the call.
func (c *call) intercept(value any, ic extract.Interceptor, itemArg *metadata.Element, p path.Path) any {
	kind := path.FutureElement
	if ic.Shape() == extract.Stream {
		kind = path.PublisherElement
	}
	tmpl := c.fork()

	return ic.Intercept(value, func(item extract.Item) error {
		sub := tmpl.fork()
		itemPath := p.Element(kind)
		if item.HasIndex {
			itemPath = p.IndexedElement(kind, item.Index)
		}
		if err := sub.enter(item.Value, itemArg, itemPath, nil); err != nil {
			return err
		}
		return sub.out.Err()
	})
}

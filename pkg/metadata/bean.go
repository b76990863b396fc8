package metadata

import (
	"fmt"
	"reflect"
	"slices"
)

// Bean is the metadata of one type: its constrained properties in
// declaration order, class-level constraints and executable signatures.
type Bean struct {
	name         string
	typ          reflect.Type
	properties   []*Element
	byName       map[string]*Element
	constraints  []Descriptor
	methods      []*Method
	constructors []*Method
}

// Name returns the bean name used in logs and error messages.
func (b *Bean) Name() string { return b.name }

// Type returns the described Go type.
func (b *Bean) Type() reflect.Type { return b.typ }

// Properties returns the properties in declaration order.
func (b *Bean) Properties() []*Element { return b.properties }

// Property returns the named property.
func (b *Bean) Property(name string) (*Element, bool) {
	e, ok := b.byName[name]
	return e, ok
}

// Constraints returns the class-level constraints.
func (b *Bean) Constraints() []Descriptor { return b.constraints }

// Method returns the named method signature.
func (b *Bean) Method(name string) (*Method, bool) {
	return findMethod(b.methods, name)
}

// Constructor returns the named constructor signature.
func (b *Bean) Constructor(name string) (*Method, bool) {
	return findMethod(b.constructors, name)
}

// Methods returns the method and constructor signatures.
func (b *Bean) Methods() []*Method {
	return slices.Concat(b.methods, b.constructors)
}

// IsConstrained reports whether validating a value of this type can
// produce anything.
func (b *Bean) IsConstrained() bool {
	if len(b.constraints) > 0 {
		return true
	}
	for _, p := range b.properties {
		if p.IsConstrained() {
			return true
		}
	}
	return false
}

// AllConstraints returns every descriptor declared on the bean, its
// properties and its executables.
func (b *Bean) AllConstraints() []Descriptor {
	out := slices.Clone(b.constraints)
	for _, p := range b.properties {
		out = append(out, p.AllConstraints()...)
	}
	for _, m := range b.Methods() {
		out = append(out, m.AllConstraints()...)
	}
	return out
}

func (b *Bean) validate() error {
	if b.typ == nil {
		return fmt.Errorf("%w: %s", ErrNilBean, b.name)
	}
	for _, d := range b.constraints {
		if d.Kind == "" {
			return fmt.Errorf("%s: %w", b.name, ErrEmptyKind)
		}
	}
	seen := make(map[string]struct{}, len(b.properties))
	for _, p := range b.properties {
		if p.name == "" {
			return fmt.Errorf("%s: %w", b.name, ErrEmptyName)
		}
		if p.getter == nil {
			return fmt.Errorf("%s.%s: %w", b.name, p.name, ErrNilGetter)
		}
		if _, ok := seen[p.name]; ok {
			return fmt.Errorf("%s.%s: %w", b.name, p.name, ErrDuplicateProperty)
		}
		seen[p.name] = struct{}{}
		if err := p.validate(); err != nil {
			return fmt.Errorf("%s.%s: %w", b.name, p.name, err)
		}
	}
	for _, list := range [][]*Method{b.methods, b.constructors} {
		names := make(map[string]struct{}, len(list))
		for _, m := range list {
			if _, ok := names[m.name]; ok {
				return fmt.Errorf("%s.%s: %w", b.name, m.name, ErrDuplicateMethod)
			}
			names[m.name] = struct{}{}
			if err := m.validate(); err != nil {
				return fmt.Errorf("%s.%s: %w", b.name, m.name, err)
			}
		}
	}
	return nil
}

// BeanBuilder assembles the metadata of T.
type BeanBuilder[T any] struct {
	bean *Bean
}

// Describe starts the metadata of T. name is used in logs and errors and
// defaults to the Go type name.
func Describe[T any](name string) *BeanBuilder[T] {
	typ := reflect.TypeFor[T]()
	if name == "" {
		name = typ.String()
	}
	return &BeanBuilder[T]{bean: &Bean{
		name:   name,
		typ:    typ,
		byName: make(map[string]*Element),
	}}
}

// Property declares a property read by get. The getter accepts both T and *T
// beans.
func (bb *BeanBuilder[T]) Property(name string, get func(T) any, opts ...Option) *BeanBuilder[T] {
	var getter func(any) any
	if get != nil {
		getter = func(bean any) any {
			switch v := bean.(type) {
			case T:
				return get(v)
			case *T:
				if v == nil {
					return nil
				}
				return get(*v)
			default:
				return nil
			}
		}
	}
	e := newElement(name, getter, opts)
	bb.bean.properties = append(bb.bean.properties, e)
	if _, exists := bb.bean.byName[name]; !exists {
		bb.bean.byName[name] = e
	}
	return bb
}

// Constraint declares class-level constraints checked against the bean value.
func (bb *BeanBuilder[T]) Constraint(descriptors ...Descriptor) *BeanBuilder[T] {
	bb.bean.constraints = append(bb.bean.constraints, descriptors...)
	return bb
}

// Method attaches a method signature.
func (bb *BeanBuilder[T]) Method(m *MethodBuilder) *BeanBuilder[T] {
	built := m.Build()
	if built.constructor {
		bb.bean.constructors = append(bb.bean.constructors, built)
	} else {
		bb.bean.methods = append(bb.bean.methods, built)
	}
	return bb
}

// Constructor attaches a constructor signature.
func (bb *BeanBuilder[T]) Constructor(m *MethodBuilder) *BeanBuilder[T] {
	m.m.constructor = true
	return bb.Method(m)
}

// Build returns the bean metadata. Problems are reported when the bean is
// registered.
func (bb *BeanBuilder[T]) Build() *Bean {
	return bb.bean
}

package metadata

import (
	"fmt"
	"slices"
)

// Method is the metadata of a method or constructor signature.
type Method struct {
	name        string
	constructor bool
	params      []*Element
	returns     *Element
	crossParams []Descriptor
}

func (m *Method) Name() string       { return m.name }
func (m *Method) IsConstructor() bool { return m.constructor }

// Parameters returns parameter metadata in positional order.
func (m *Method) Parameters() []*Element { return m.params }

// Parameter returns the metadata of parameter i, or nil.
func (m *Method) Parameter(i int) *Element {
	if i < 0 || i >= len(m.params) {
		return nil
	}
	return m.params[i]
}

// ReturnValue returns the return value metadata, or nil.
func (m *Method) ReturnValue() *Element { return m.returns }

// CrossParameterConstraints are checked against the whole argument list.
func (m *Method) CrossParameterConstraints() []Descriptor { return m.crossParams }

// AllConstraints returns every descriptor declared on the signature.
func (m *Method) AllConstraints() []Descriptor {
	out := slices.Clone(m.crossParams)
	for _, p := range m.params {
		out = append(out, p.AllConstraints()...)
	}
	if m.returns != nil {
		out = append(out, m.returns.AllConstraints()...)
	}
	return out
}

func (m *Method) validate() error {
	if m.name == "" {
		return ErrEmptyName
	}
	for _, d := range m.crossParams {
		if d.Kind == "" {
			return ErrEmptyKind
		}
	}
	for i, p := range m.params {
		if p.name == "" {
			return fmt.Errorf("parameter %d: %w", i, ErrEmptyName)
		}
		if err := p.validate(); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	if m.returns != nil {
		return m.returns.validate()
	}
	return nil
}

// MethodBuilder assembles a Method.
type MethodBuilder struct {
	m *Method
}

// NewMethod starts a method signature.
func NewMethod(name string) *MethodBuilder {
	return &MethodBuilder{m: &Method{name: name}}
}

// NewConstructor starts a constructor signature.
func NewConstructor(name string) *MethodBuilder {
	return &MethodBuilder{m: &Method{name: name, constructor: true}}
}

// Param declares the next positional parameter.
func (b *MethodBuilder) Param(name string, opts ...Option) *MethodBuilder {
	b.m.params = append(b.m.params, newElement(name, nil, opts))
	return b
}

// Returns declares return value metadata.
func (b *MethodBuilder) Returns(opts ...Option) *MethodBuilder {
	b.m.returns = newElement("", nil, opts)
	return b
}

// CrossParameter declares constraints over the whole argument list.
func (b *MethodBuilder) CrossParameter(descriptors ...Descriptor) *MethodBuilder {
	b.m.crossParams = append(b.m.crossParams, descriptors...)
	return b
}

// Build returns the signature.
func (b *MethodBuilder) Build() *Method {
	return b.m
}

func findMethod(list []*Method, name string) (*Method, bool) {
	for _, m := range list {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

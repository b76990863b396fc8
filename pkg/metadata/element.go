package metadata

import "slices"

// MaxTypeArgumentDepth bounds nested type-argument metadata. Deeper levels
// are dropped when the element is built.
const MaxTypeArgumentDepth = 8

// Type-argument positions. Indexed, optional and async containers use
// ElementArgument; maps use KeyArgument for keys and ValueArgument for values.
const (
	ElementArgument = 0
	KeyArgument     = 0
	ValueArgument   = 1
)

// Option configures an element while it is built.
// A Descriptor is itself an Option that attaches the constraint.
type Option interface {
	apply(*elementConfig)
}

type optionFunc func(*elementConfig)

func (f optionFunc) apply(c *elementConfig) { f(c) }

func (d Descriptor) apply(c *elementConfig) {
	c.constraints = append(c.constraints, d)
}

type elementConfig struct {
	constraints []Descriptor
	cascaded    bool
	typeArgs    [2]*elementConfig
}

func (c *elementConfig) arg(i int) *elementConfig {
	if c.typeArgs[i] == nil {
		c.typeArgs[i] = &elementConfig{}
	}
	return c.typeArgs[i]
}

// Valid marks the element as cascaded. A cascaded bean is validated against
// its own metadata; a cascaded container passes the cascade on to its
// elements (map values for maps).
func Valid() Option {
	return optionFunc(func(c *elementConfig) { c.cascaded = true })
}

// Elements configures the element type of a slice, array, optional or async
// container.
func Elements(opts ...Option) Option {
	return typeArgument(ElementArgument, opts)
}

// Keys configures the key type of a map.
func Keys(opts ...Option) Option {
	return typeArgument(KeyArgument, opts)
}

// Values configures the value type of a map.
func Values(opts ...Option) Option {
	return typeArgument(ValueArgument, opts)
}

func typeArgument(i int, opts []Option) Option {
	return optionFunc(func(c *elementConfig) {
		arg := c.arg(i)
		for _, o := range opts {
			if o != nil {
				o.apply(arg)
			}
		}
	})
}

// Element describes one validatable position: a property, a parameter, a
// return value or a container type argument. Elements are immutable once
// built and shared by all validations.
type Element struct {
	name        string
	constraints []Descriptor
	cascaded    bool
	typeArgs    [2]*Element
	getter      func(bean any) any

	constrained bool
	// cascade targets handed to container items, with the cascade flag folded in
	itemArgs [2]*Element
}

func newElement(name string, getter func(any) any, opts []Option) *Element {
	cfg := &elementConfig{}
	for _, o := range opts {
		if o != nil {
			o.apply(cfg)
		}
	}
	return buildElement(name, getter, cfg, 0)
}

func buildElement(name string, getter func(any) any, cfg *elementConfig, depth int) *Element {
	e := &Element{
		name:        name,
		constraints: slices.Clone(cfg.constraints),
		cascaded:    cfg.cascaded,
		getter:      getter,
	}
	if depth < MaxTypeArgumentDepth {
		for i, argCfg := range cfg.typeArgs {
			if argCfg != nil {
				e.typeArgs[i] = buildElement("", nil, argCfg, depth+1)
			}
		}
	}

	e.itemArgs = e.typeArgs
	if e.cascaded {
		e.itemArgs[ElementArgument] = cascadedCopy(e.typeArgs[ElementArgument])
		e.itemArgs[ValueArgument] = cascadedCopy(e.typeArgs[ValueArgument])
	}

	e.constrained = len(e.constraints) > 0 || e.cascaded
	for _, arg := range e.typeArgs {
		if arg != nil && arg.constrained {
			e.constrained = true
		}
	}
	return e
}

// cascadeOnly is the item metadata of a cascaded container without a declared
// type argument. It cascades through any depth of nested containers.
var cascadeOnly = &Element{cascaded: true, constrained: true}

func init() {
	cascadeOnly.itemArgs = [2]*Element{cascadeOnly, cascadeOnly}
}

func cascadedCopy(arg *Element) *Element {
	if arg == nil {
		return cascadeOnly
	}
	if arg.cascaded {
		return arg
	}
	cp := *arg
	cp.cascaded = true
	cp.constrained = true
	cp.itemArgs = [2]*Element{
		cascadedCopy(arg.typeArgs[ElementArgument]),
		cascadedCopy(arg.typeArgs[ValueArgument]),
	}
	return &cp
}

// NewElement builds a standalone element, e.g. for a parameter or a value
// validated on its own.
func NewElement(name string, opts ...Option) *Element {
	return newElement(name, nil, opts)
}

// Name returns the declared name. Type arguments have no name.
func (e *Element) Name() string { return e.name }

// Constraints returns the declared constraints in declaration order.
func (e *Element) Constraints() []Descriptor { return e.constraints }

// IsCascaded reports whether validation recurses into the value.
func (e *Element) IsCascaded() bool { return e.cascaded }

// IsConstrained reports whether anything at or below this element needs
// validation. Unconstrained elements are skipped without extraction.
func (e *Element) IsConstrained() bool { return e != nil && e.constrained }

// TypeArgument returns the declared metadata of type argument i, or nil.
func (e *Element) TypeArgument(i int) *Element {
	if i < 0 || i >= len(e.typeArgs) {
		return nil
	}
	return e.typeArgs[i]
}

// ItemArgument returns the metadata applied to container items at position i.
// It equals TypeArgument(i) with the element's cascade flag passed on to
// elements and map values.
func (e *Element) ItemArgument(i int) *Element {
	if i < 0 || i >= len(e.itemArgs) {
		return nil
	}
	return e.itemArgs[i]
}

// HasGetter reports whether the element reads its value from a bean.
func (e *Element) HasGetter() bool { return e.getter != nil }

// Get reads the element value from bean.
func (e *Element) Get(bean any) any {
	if e.getter == nil {
		return nil
	}
	return e.getter(bean)
}

func (e *Element) validate() error {
	for _, d := range e.constraints {
		if d.Kind == "" {
			return ErrEmptyKind
		}
	}
	for _, arg := range e.typeArgs {
		if arg != nil {
			if err := arg.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// AllConstraints returns every descriptor declared at or below this element.
func (e *Element) AllConstraints() []Descriptor {
	var out []Descriptor
	e.walk(func(d Descriptor) { out = append(out, d) })
	return out
}

func (e *Element) walk(fn func(Descriptor)) {
	for _, d := range e.constraints {
		fn(d)
	}
	for _, arg := range e.typeArgs {
		if arg != nil {
			arg.walk(fn)
		}
	}
}

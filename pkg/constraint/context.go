package constraint

import (
	"context"
	"maps"

	"github.com/dmitrymomot/validation/pkg/path"
)

// Context is handed to a validator unit for one check. The unit can suppress
// the default violation, add custom ones and contribute message parameters.
// The engine reads it right after the unit returns; a Context must not be
// retained.
type Context struct {
	ctx    context.Context
	root   any
	leaf   any
	locale string

	defaultDisabled bool
	params          map[string]any
	pending         []Pending
}

// Pending is a custom violation requested by a validator unit.
type Pending struct {
	Template string
	// Nodes are appended to the path of the checked element.
	Nodes  []path.Node
	Params map[string]any
}

// NewContext creates a per-check context.
func NewContext(ctx context.Context, root, leaf any, locale string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{ctx: ctx, root: root, leaf: leaf, locale: locale}
}

// Context returns the context.Context of the validation call.
func (c *Context) Context() context.Context { return c.ctx }

// RootBean returns the value the validation call started with.
func (c *Context) RootBean() any { return c.root }

// LeafBean returns the bean holding the checked element, if any.
func (c *Context) LeafBean() any { return c.leaf }

// Locale returns the locale messages are rendered in.
func (c *Context) Locale() string { return c.locale }

// DisableDefaultViolation suppresses the violation built from the
// descriptor's message when the unit reports the value as invalid.
func (c *Context) DisableDefaultViolation() {
	c.defaultDisabled = true
}

// DefaultViolationDisabled reports whether DisableDefaultViolation was called.
func (c *Context) DefaultViolationDisabled() bool { return c.defaultDisabled }

// AddMessageParameter exposes an extra variable to every message of this check.
func (c *Context) AddMessageParameter(name string, value any) {
	if c.params == nil {
		c.params = make(map[string]any)
	}
	c.params[name] = value
}

// MessageParameters returns the parameters added by the unit.
func (c *Context) MessageParameters() map[string]any { return c.params }

// AddViolation adds a violation with the given template at the checked element.
func (c *Context) AddViolation(template string) {
	c.pending = append(c.pending, Pending{Template: template})
}

// BuildViolation starts a custom violation.
func (c *Context) BuildViolation(template string) *ViolationBuilder {
	return &ViolationBuilder{ctx: c, pending: Pending{Template: template}}
}

// Pending returns the custom violations added by the unit.
func (c *Context) Pending() []Pending { return c.pending }

// ViolationBuilder places a custom violation below the checked element.
type ViolationBuilder struct {
	ctx     *Context
	pending Pending
}

// AtProperty appends a property node.
func (b *ViolationBuilder) AtProperty(name string) *ViolationBuilder {
	b.pending.Nodes = append(b.pending.Nodes, path.Node{Kind: path.KindProperty, Name: name})
	return b
}

// AtIndex appends a list element node.
func (b *ViolationBuilder) AtIndex(i int) *ViolationBuilder {
	b.pending.Nodes = append(b.pending.Nodes, path.Node{
		Kind:     path.KindContainerElement,
		Element:  path.ListElement,
		Index:    i,
		HasIndex: true,
	})
	return b
}

// AtKey appends a map value node.
func (b *ViolationBuilder) AtKey(key any) *ViolationBuilder {
	b.pending.Nodes = append(b.pending.Nodes, path.Node{
		Kind:    path.KindContainerElement,
		Element: path.MapValue,
		Key:     key,
		HasKey:  true,
	})
	return b
}

// WithParameter exposes a variable to this violation's message only.
func (b *ViolationBuilder) WithParameter(name string, value any) *ViolationBuilder {
	if b.pending.Params == nil {
		b.pending.Params = make(map[string]any)
	}
	b.pending.Params[name] = value
	return b
}

// Add records the violation. The builder must not be used afterwards.
func (b *ViolationBuilder) Add() {
	p := b.pending
	p.Params = maps.Clone(p.Params)
	b.ctx.pending = append(b.ctx.pending, p)
}

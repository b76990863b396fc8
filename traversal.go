package validation

import (
	"context"
	"maps"
	"reflect"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/extract"
	"github.com/dmitrymomot/validation/pkg/interpolate"
	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/path"
)

// visitKey identifies a reference-typed value validated against one piece
// of metadata (*metadata.Bean or *metadata.Element). Slices sharing a
// backing array are told apart by length.
type visitKey struct {
	ptr  uintptr
	len  int
	typ  reflect.Type
	meta any
}

// call holds the state of one top-level validation call. It is confined to
// the calling goroutine; async interception forks a fresh call per value.
type call struct {
	v      *Validator
	ctx    context.Context
	root   any
	groups []string
	filter PropertyFilter
	locale string

	// noCascade stops at bean boundaries (ValidateValue).
	noCascade bool

	executable string
	args       []any

	visited map[visitKey]struct{}
	out     Violations
}

func (v *Validator) newCall(ctx context.Context, root any, opts []CallOption) *call {
	var cfg callConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &call{
		v:       v,
		ctx:     ctx,
		root:    root,
		groups:  cfg.groups,
		filter:  cfg.filter,
		locale:  v.callLocale(ctx, cfg),
		visited: make(map[visitKey]struct{}),
	}
}

// fork returns a call sharing the settings of c with empty state.
func (c *call) fork() *call {
	f := *c
	f.visited = make(map[visitKey]struct{})
	f.out = nil
	return &f
}

// visit records value against meta and reports whether it was new.
// Values without identity cannot form cycles and are always new. Neither
// can zero-size values, whose distinct instances may share one address.
func (c *call) visit(value any, meta any) bool {
	rv := reflect.ValueOf(value)
	var key visitKey
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.Type().Elem().Size() == 0 {
			return true
		}
	case reflect.Slice:
		if rv.Type().Elem().Size() == 0 {
			return true
		}
		key.len = rv.Len()
	case reflect.Map:
	default:
		return true
	}
	key.ptr, key.typ, key.meta = rv.Pointer(), rv.Type(), meta
	if _, seen := c.visited[key]; seen {
		return false
	}
	c.visited[key] = struct{}{}
	return true
}

// enter validates value at the position described by elem: direct
// constraints first, then constrained container items, then the cascade.
func (c *call) enter(value any, elem *metadata.Element, p path.Path, leaf any) error {
	if !elem.IsConstrained() {
		return nil
	}
	value, err := c.unwrap(value, p)
	if err != nil {
		return err
	}

	if err := c.checkAll(value, elem.Constraints(), p, leaf); err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return c.descend(value, elem, p, leaf)
}

// unwrap strips pointers and optional wrappers. Empty wrappers and nil
// references become nil.
func (c *call) unwrap(value any, p path.Path) (any, error) {
	value = indirect(value)
	inner, present, err := c.v.extractors.Unwrap(value)
	if err != nil {
		return nil, &ExecutionError{Path: p, Err: err}
	}
	if !present {
		return nil, nil
	}
	return indirect(inner), nil
}

func (c *call) descend(value any, elem *metadata.Element, p path.Path, leaf any) error {
	if ex, ok := c.v.extractors.Find(value); ok {
		switch ex.Shape() {
		case extract.Indexed, extract.Keyed:
			return c.container(value, ex.(extract.Iterable), elem, p, leaf)
		case extract.Deferred, extract.Stream:
			if elem.ItemArgument(metadata.ElementArgument).IsConstrained() {
				c.v.logger.DebugContext(c.ctx, "async value not intercepted outside executable validation",
					logger.Path(p), logger.Type(value))
			}
			return nil
		}
	}
	if !elem.IsCascaded() || c.noCascade {
		return nil
	}
	return c.cascade(value, p)
}

func (c *call) container(value any, ex extract.Iterable, elem *metadata.Element, p path.Path, leaf any) error {
	keyed := ex.Shape() == extract.Keyed

	var keyArg, itemArg *metadata.Element
	if keyed {
		keyArg = elem.TypeArgument(metadata.KeyArgument)
		itemArg = elem.ItemArgument(metadata.ValueArgument)
	} else {
		itemArg = elem.ItemArgument(metadata.ElementArgument)
	}
	if !keyArg.IsConstrained() && !itemArg.IsConstrained() {
		return nil
	}
	if !c.visit(value, elem) {
		return nil
	}

	for item := range ex.Extract(value) {
		if keyed {
			if keyArg.IsConstrained() {
				if err := c.enter(item.Key, keyArg, p.KeyedElement(path.MapKey, item.Key), leaf); err != nil {
					return err
				}
			}
			if itemArg.IsConstrained() {
				if err := c.enter(item.Value, itemArg, p.KeyedElement(path.MapValue, item.Key), leaf); err != nil {
					return err
				}
			}
			continue
		}

		itemPath := p.Element(path.IterableElement)
		if item.HasIndex {
			itemPath = p.IndexedElement(path.ListElement, item.Index)
		}
		if err := c.enter(item.Value, itemArg, itemPath, leaf); err != nil {
			return err
		}
	}
	return nil
}

// cascade validates a nested bean against its own metadata.
func (c *call) cascade(value any, p path.Path) error {
	b, ok := c.v.beans.LookupValue(value)
	if !ok {
		if isStruct(value) {
			return &ConfigurationError{Type: reflect.TypeOf(value), Element: p.String(), Err: ErrMissingMetadata}
		}
		return nil
	}
	if !c.visit(value, b) {
		return nil
	}
	return c.bean(value, b, p)
}

func (c *call) bean(value any, b *metadata.Bean, p path.Path) error {
	if err := c.checkAll(value, b.Constraints(), p.Bean(), value); err != nil {
		return err
	}
	for _, prop := range b.Properties() {
		if !prop.IsConstrained() {
			continue
		}
		if c.filter != nil && !c.filter(value, prop.Name()) {
			continue
		}
		if err := c.enter(prop.Get(value), prop, p.Property(prop.Name()), value); err != nil {
			return err
		}
	}
	return nil
}

func (c *call) checkAll(value any, descriptors []metadata.Descriptor, p path.Path, leaf any) error {
	for _, d := range descriptors {
		if !d.InGroups(c.groups) {
			continue
		}
		if err := c.check(value, d, p, leaf); err != nil {
			return err
		}
	}
	return nil
}

// check runs one constraint and materialises its violations.
func (c *call) check(value any, d metadata.Descriptor, p path.Path, leaf any) error {
	unit, err := c.v.constraints.Find(d, value)
	if err != nil {
		return &ConfigurationError{Type: reflect.TypeOf(value), Element: p.String(), Err: err}
	}
	if unit == nil {
		c.v.logger.DebugContext(c.ctx, "constraint not applicable to value type",
			logger.Constraint(d), logger.Path(p), logger.Type(value))
		return nil
	}

	cc := constraint.NewContext(c.ctx, c.root, leaf, c.locale)
	valid, err := unit.IsValid(value, d, cc)
	if err != nil {
		return &ExecutionError{Constraint: d, Path: p, Err: err}
	}
	pending := cc.Pending()
	if valid && len(pending) == 0 {
		return nil
	}

	attrs := d.MessageAttributes()
	maps.Copy(attrs, cc.MessageParameters())
	attrs[interpolate.ValidatedValue] = value

	if !valid && !cc.DefaultViolationDisabled() {
		c.add(d.Message(), attrs, value, d, p, leaf)
	}
	for _, pv := range pending {
		pa := attrs
		if len(pv.Params) > 0 {
			pa = maps.Clone(attrs)
			maps.Copy(pa, pv.Params)
		}
		vp := p
		for _, n := range pv.Nodes {
			vp = vp.Append(n)
		}
		c.add(pv.Template, pa, value, d, vp, leaf)
	}
	return nil
}

func (c *call) add(template string, attrs map[string]any, value any, d metadata.Descriptor, p path.Path, leaf any) {
	c.out = append(c.out, Violation{
		Message:      c.v.interpolator.Interpolate(template, attrs, c.locale),
		Template:     template,
		Path:         p,
		InvalidValue: value,
		RootBean:     c.root,
		LeafBean:     leaf,
		Descriptor:   d,
		Executable:   c.executable,
		Arguments:    c.args,
	})
}

// indirect follows pointers to non-struct values and maps nil references to
// nil. Pointers to structs are kept so that bean identity survives.
func indirect(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Pointer:
			if rv.IsNil() {
				return nil
			}
			if rv.Elem().Kind() == reflect.Struct {
				return rv.Interface()
			}
			rv = rv.Elem()
			continue
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			if rv.IsNil() {
				return nil
			}
			if rv.Kind() == reflect.Interface {
				rv = rv.Elem()
				continue
			}
		}
		return rv.Interface()
	}
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

package constraint

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/validation/pkg/metadata"
)

// Validator is a pluggable predicate for one constraint kind.
// It reports false for an invalid value and returns an error only for
// unexpected failures, which abort the validation call.
type Validator interface {
	IsValid(value any, d metadata.Descriptor, c *Context) (bool, error)
}

// Func adapts a function to Validator.
type Func func(value any, d metadata.Descriptor, c *Context) (bool, error)

func (f Func) IsValid(value any, d metadata.Descriptor, c *Context) (bool, error) {
	return f(value, d, c)
}

// Resolver supplies validator units the registry has no registration for,
// e.g. from a dependency injection container. name is the descriptor's
// ValidatedBy override and may be empty.
type Resolver interface {
	Resolve(kind, name string) (Validator, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(kind, name string) (Validator, bool)

func (f ResolverFunc) Resolve(kind, name string) (Validator, bool) {
	return f(kind, name)
}

type unit struct {
	target    Target
	validator Validator
}

type cacheKey struct {
	kind string
	typ  reflect.Type
}

type resolution struct {
	validator Validator
	err       error
}

// Registry maps constraint kinds to validator units. It is populated at
// startup and sealed by the first lookup; later registrations fail with
// ErrRegistrySealed. Lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	units    map[string][]unit
	named    map[string]Validator
	resolver Resolver

	sealed atomic.Bool
	cache  sync.Map // cacheKey -> resolution
}

// Option configures a Registry.
type Option func(*Registry)

// WithResolver sets the fallback used for kinds without registered units
// and for named overrides.
func WithResolver(r Resolver) Option {
	return func(reg *Registry) {
		reg.resolver = r
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		units: make(map[string][]unit),
		named: make(map[string]Validator),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a validator unit for kind accepting values matched by target.
// Registering two units whose targets overlap at the same rank is rejected.
func (r *Registry) Register(kind string, target Target, v Validator) error {
	if kind == "" {
		return ErrEmptyKind
	}
	if v == nil {
		return fmt.Errorf("%w: %s", ErrNilValidator, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, kind)
	}
	for _, u := range r.units[kind] {
		if u.target.overlaps(target) {
			return fmt.Errorf("%w: %s for %s", ErrDuplicateValidator, kind, target)
		}
	}
	r.units[kind] = append(r.units[kind], unit{target: target, validator: v})
	return nil
}

// RegisterNamed adds a unit selected by a descriptor's ValidatedBy override.
func (r *Registry) RegisterNamed(name string, v Validator) error {
	if name == "" {
		return ErrEmptyKind
	}
	if v == nil {
		return fmt.Errorf("%w: %s", ErrNilValidator, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, name)
	}
	if _, ok := r.named[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateValidator, name)
	}
	r.named[name] = v
	return nil
}

// RegisterFunc registers a typed predicate. The target follows from T:
// the empty interface accepts everything, other interfaces match
// implementations and concrete types match exactly.
func RegisterFunc[T any](r *Registry, kind string, fn func(value T, d metadata.Descriptor, c *Context) (bool, error)) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilValidator, kind)
	}
	return r.Register(kind, targetFor[T](), Func(func(value any, d metadata.Descriptor, c *Context) (bool, error) {
		v, ok := value.(T)
		if !ok && value != nil {
			if p, isPtr := value.(*T); isPtr && p != nil {
				v = *p
			}
		}
		return fn(v, d, c)
	}))
}

// Seal stops further registrations.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Has reports whether units are registered for kind.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units[kind]) > 0
}

// Check reports a configuration error when d cannot resolve to any unit.
func (r *Registry) Check(d metadata.Descriptor) error {
	r.Seal()

	if d.ValidatedBy != "" {
		_, err := r.findNamed(d)
		return err
	}

	if r.Has(d.Kind) {
		return nil
	}
	if r.resolver != nil {
		if _, ok := r.resolver.Resolve(d.Kind, ""); ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoValidator, d.Kind)
}

// Find returns the unit checking value for descriptor d.
// A nil Validator with a nil error means units exist for the kind but none
// accepts the value, so the constraint does not apply.
func (r *Registry) Find(d metadata.Descriptor, value any) (Validator, error) {
	r.Seal()

	if d.ValidatedBy != "" {
		return r.findNamed(d)
	}

	key := cacheKey{kind: d.Kind, typ: reflect.TypeOf(value)}
	if cached, ok := r.cache.Load(key); ok {
		res := cached.(resolution)
		return res.validator, res.err
	}

	v, err := r.resolve(d.Kind, key.typ)
	r.cache.Store(key, resolution{validator: v, err: err})
	return v, err
}

func (r *Registry) findNamed(d metadata.Descriptor) (Validator, error) {
	r.mu.RLock()
	v, ok := r.named[d.ValidatedBy]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}
	if r.resolver != nil {
		if v, ok := r.resolver.Resolve(d.Kind, d.ValidatedBy); ok && v != nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s validated by %q", ErrNoValidator, d.Kind, d.ValidatedBy)
}

func (r *Registry) resolve(kind string, typ reflect.Type) (Validator, error) {
	r.mu.RLock()
	units := r.units[kind]
	r.mu.RUnlock()

	if len(units) == 0 {
		if r.resolver != nil {
			if v, ok := r.resolver.Resolve(kind, ""); ok && v != nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNoValidator, kind)
	}

	var (
		best      *unit
		ambiguous bool
	)
	for i := range units {
		u := &units[i]
		if !u.target.Matches(typ) {
			continue
		}
		switch {
		case best == nil || u.target.rank > best.target.rank:
			best, ambiguous = u, false
		case u.target.rank == best.target.rank:
			ambiguous = true
		}
	}

	if ambiguous {
		return nil, fmt.Errorf("%w: %s for %s", ErrAmbiguousValidator, kind, typ)
	}
	if best == nil {
		return nil, nil
	}
	return best.validator, nil
}

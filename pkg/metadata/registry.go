package metadata

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry is the type metadata provider. Beans are registered at startup
// and looked up by Go type during validation.
type Registry struct {
	mu    sync.RWMutex
	beans map[reflect.Type]*Bean
	order []*Bean
}

// NewRegistry creates a registry holding the given beans.
func NewRegistry(beans ...*Bean) (*Registry, error) {
	r := &Registry{beans: make(map[reflect.Type]*Bean)}
	if err := r.Register(beans...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds beans. A type can be described only once; on error nothing
// is registered.
func (r *Registry) Register(beans ...*Bean) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.beans == nil {
		r.beans = make(map[reflect.Type]*Bean)
	}

	batch := make(map[reflect.Type]struct{}, len(beans))
	for _, b := range beans {
		if b == nil {
			return ErrNilBean
		}
		if err := b.validate(); err != nil {
			return err
		}
		typ := baseType(b.typ)
		if _, ok := r.beans[typ]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateBean, typ)
		}
		if _, ok := batch[typ]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateBean, typ)
		}
		batch[typ] = struct{}{}
	}

	for _, b := range beans {
		r.beans[baseType(b.typ)] = b
		r.order = append(r.order, b)
	}
	return nil
}

// Lookup returns the bean for t. Pointer types resolve to their element type.
func (r *Registry) Lookup(t reflect.Type) (*Bean, bool) {
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.beans[baseType(t)]
	return b, ok
}

// LookupValue returns the bean for the dynamic type of v.
func (r *Registry) LookupValue(v any) (*Bean, bool) {
	return r.Lookup(reflect.TypeOf(v))
}

// Beans returns registered beans in registration order.
func (r *Registry) Beans() []*Bean {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Bean, len(r.order))
	copy(out, r.order)
	return out
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

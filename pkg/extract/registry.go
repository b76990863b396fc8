package extract

import "fmt"

// Registry finds the extractor for a container value. Custom extractors are
// consulted before the built-in ones. A Registry is immutable and safe for
// concurrent use.
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a registry with custom extractors followed by Defaults.
func NewRegistry(custom ...Extractor) (*Registry, error) {
	all := make([]Extractor, 0, len(custom)+5)
	for _, e := range custom {
		if e == nil {
			return nil, ErrNilExtractor
		}
		if err := checkShape(e); err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	return &Registry{extractors: append(all, Defaults()...)}, nil
}

func checkShape(e Extractor) error {
	var ok bool
	switch e.Shape() {
	case Optional:
		_, ok = e.(Unwrapper)
	case Indexed, Keyed:
		_, ok = e.(Iterable)
	case Deferred, Stream:
		_, ok = e.(Interceptor)
	}
	if !ok {
		return fmt.Errorf("%w: %T as %s", ErrShapeMismatch, e, e.Shape())
	}
	return nil
}

// Find returns the first extractor supporting v.
func (r *Registry) Find(v any) (Extractor, bool) {
	if v == nil {
		return nil, false
	}
	for _, e := range r.extractors {
		if e.Supports(v) {
			return e, true
		}
	}
	return nil, false
}

// Unwrap peels optional wrappers off v. present is false when a wrapper is
// empty; v is then returned as nil.
func (r *Registry) Unwrap(v any) (any, bool, error) {
	for range maxUnwrap {
		e, ok := r.Find(v)
		if !ok || e.Shape() != Optional {
			return v, v != nil, nil
		}
		inner, present, err := e.(Unwrapper).Unwrap(v)
		if err != nil {
			return nil, false, err
		}
		if !present {
			return nil, false, nil
		}
		v = inner
	}
	return v, v != nil, nil
}

const maxUnwrap = 8

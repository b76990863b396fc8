package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/path"
)

var (
	ErrMissingMetadata = errors.New("validation: no constraint metadata for type")
	ErrNilValue        = errors.New("validation: cannot validate nil value")
	ErrUnknownProperty = errors.New("validation: unknown property")
	ErrUnknownMethod   = errors.New("validation: unknown method or constructor")
	ErrArgumentCount   = errors.New("validation: argument count does not match parameters")
	ErrInvalidConfig   = errors.New("validation: invalid configuration")
)

// ConfigurationError reports a developer error: a constraint without a
// resolvable validator unit, or a cascade into a type without metadata.
// It is returned instead of violations and should fail loudly.
type ConfigurationError struct {
	Type    reflect.Type
	Element string
	Err     error
}

func (e *ConfigurationError) Error() string {
	where := "<nil>"
	if e.Type != nil {
		where = e.Type.String()
	}
	if e.Element != "" {
		where += " at " + e.Element
	}
	return fmt.Sprintf("validation: configuration error for %s: %v", where, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ExecutionError wraps an unexpected failure of a validator unit or a value
// extractor. It aborts the validation call and is never turned into a violation.
type ExecutionError struct {
	Constraint metadata.Descriptor
	Path       path.Path
	Err        error
}

func (e *ExecutionError) Error() string {
	if e.Constraint.Kind == "" {
		return fmt.Sprintf("validation: %q: %v", e.Path.String(), e.Err)
	}
	return fmt.Sprintf("validation: %s at %q: %v", e.Constraint, e.Path.String(), e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

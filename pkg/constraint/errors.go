package constraint

import "errors"

var (
	ErrNoValidator        = errors.New("constraint: no validator for constraint kind")
	ErrAmbiguousValidator = errors.New("constraint: ambiguous validators for constraint kind")
	ErrDuplicateValidator = errors.New("constraint: validator already registered")
	ErrRegistrySealed     = errors.New("constraint: registry is sealed")
	ErrNilValidator       = errors.New("constraint: validator is nil")
	ErrEmptyKind          = errors.New("constraint: constraint kind is empty")
)

package metadata

import "errors"

var (
	ErrNilBean           = errors.New("metadata: bean is nil")
	ErrDuplicateBean     = errors.New("metadata: bean already registered for type")
	ErrDuplicateProperty = errors.New("metadata: duplicate property")
	ErrDuplicateMethod   = errors.New("metadata: duplicate method")
	ErrEmptyName         = errors.New("metadata: element name is empty")
	ErrEmptyKind         = errors.New("metadata: constraint kind is empty")
	ErrNilGetter         = errors.New("metadata: property getter is nil")
)

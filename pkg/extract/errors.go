package extract

import "errors"

var (
	ErrNilExtractor  = errors.New("extract: extractor is nil")
	ErrShapeMismatch = errors.New("extract: extractor does not implement its shape")
)

package rules

import "errors"

var (
	ErrInvalidAttribute  = errors.New("rules: invalid constraint attribute")
	ErrInvalidPattern    = errors.New("rules: invalid pattern")
	ErrInvalidExpression = errors.New("rules: invalid expression")
	ErrInvalidTag        = errors.New("rules: invalid validation tag")
	ErrNotComparable     = errors.New("rules: value is not comparable to bound")
)

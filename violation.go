package validation

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/path"
)

// Violation is one failed constraint.
type Violation struct {
	// Message is the interpolated message; Template the one it was built from.
	Message  string
	Template string
	Path     path.Path

	InvalidValue any
	RootBean     any
	// LeafBean is the bean holding the invalid element; nil for parameters
	// and return values.
	LeafBean   any
	Descriptor metadata.Descriptor

	// Executable and Arguments are set by executable validation.
	Executable string
	Arguments  []any
}

// String renders "<path>: <message>", or just the message for an empty path.
func (v Violation) String() string {
	p := v.Path.String()
	if p == "" {
		return v.Message
	}
	return p + ": " + v.Message
}

// Violations is the result of a validation call. It implements error so it can
// be returned as is; a nil or empty Violations means the value is valid.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any violation has the rendered path p.
func (vs Violations) Has(p string) bool {
	for _, v := range vs {
		if v.Path.String() == p {
			return true
		}
	}
	return false
}

// Get returns the messages of violations with the rendered path p.
func (vs Violations) Get(p string) []string {
	var messages []string
	for _, v := range vs {
		if v.Path.String() == p {
			messages = append(messages, v.Message)
		}
	}
	return messages
}

// Paths returns the distinct rendered paths in emission order.
func (vs Violations) Paths() []string {
	var paths []string
	seen := make(map[string]bool, len(vs))
	for _, v := range vs {
		p := v.Path.String()
		if !seen[p] {
			paths = append(paths, p)
			seen[p] = true
		}
	}
	return paths
}

// Strings renders every violation with String.
func (vs Violations) Strings() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func (vs Violations) IsEmpty() bool {
	return len(vs) == 0
}

// Err returns vs as an error, or nil when it is empty.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// ExtractViolations returns the Violations wrapped in err, if any.
func ExtractViolations(err error) Violations {
	if err == nil {
		return nil
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}
	return nil
}

func IsViolation(err error) bool {
	if err == nil {
		return false
	}
	var vs Violations
	return errors.As(err, &vs)
}

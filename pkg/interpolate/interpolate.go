// Package interpolate expands constraint message templates.
//
// A template references variables with braces: "must be at least {min}".
// Variables resolve against the constraint attributes first and then against
// a MessageSource, so a template consisting only of a bundle key
// ("{validation.not_blank}") is replaced with the localised message. Text
// returned by the message source is interpolated again with the same
// attributes, which lets bundle messages reference attributes themselves.
//
// A backslash escapes '{', '}' and '\' so they are emitted literally:
//
//	interpolator.Interpolate(`\{literal\}`, nil, "en") // "{literal}"
//
// Unresolvable variables are kept as written; interpolation never fails.
package interpolate

import (
	"fmt"
	"strings"
)

const (
	// Escape marks the following brace or escape character as literal text.
	Escape = '\\'

	// ValidatedValue is the attribute holding the value under test.
	ValidatedValue = "validatedValue"

	// maxDepth bounds re-interpolation of messages coming from the source.
	maxDepth = 4
)

// MessageSource resolves message keys for a locale.
type MessageSource interface {
	Lookup(locale, key string) (string, bool)
}

// MessageSourceFunc adapts a function to MessageSource.
type MessageSourceFunc func(locale, key string) (string, bool)

func (f MessageSourceFunc) Lookup(locale, key string) (string, bool) {
	return f(locale, key)
}

// Interpolator expands templates. It holds no mutable state and is safe for
// concurrent use.
type Interpolator struct {
	source MessageSource
}

// New creates an interpolator. source may be nil, in which case only
// attributes are consulted.
func New(source MessageSource) *Interpolator {
	return &Interpolator{source: source}
}

// Interpolate expands template using attrs and the message source.
func (i *Interpolator) Interpolate(template string, attrs map[string]any, locale string) string {
	return i.interpolate(template, attrs, locale, 0)
}

func (i *Interpolator) interpolate(template string, attrs map[string]any, locale string, depth int) string {
	if !strings.ContainsAny(template, `{}\`) {
		return template
	}

	var (
		out       strings.Builder
		name      strings.Builder
		capturing bool
	)
	out.Grow(len(template))

	runes := []rune(template)
	for pos := 0; pos < len(runes); pos++ {
		r := runes[pos]

		if r == Escape && pos+1 < len(runes) && isEscapable(runes[pos+1]) {
			pos++
			if capturing {
				name.WriteRune(runes[pos])
			} else {
				out.WriteRune(runes[pos])
			}
			continue
		}

		switch {
		case capturing && r == '}':
			out.WriteString(i.resolve(name.String(), attrs, locale, depth))
			name.Reset()
			capturing = false
		case capturing:
			name.WriteRune(r)
		case r == '{':
			capturing = true
		default:
			out.WriteRune(r)
		}
	}

	if capturing {
		out.WriteByte('{')
		out.WriteString(name.String())
	}

	return out.String()
}

func (i *Interpolator) resolve(name string, attrs map[string]any, locale string, depth int) string {
	if v, ok := attrs[name]; ok {
		return toString(v)
	}
	if i.source != nil && depth < maxDepth {
		if msg, ok := i.source.Lookup(locale, name); ok {
			return i.interpolate(msg, attrs, locale, depth+1)
		}
	}
	return "{" + name + "}"
}

func isEscapable(r rune) bool {
	return r == '{' || r == '}' || r == Escape
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

package logger

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Constraint records a constraint descriptor under the key "constraint".
func Constraint(c fmt.Stringer) slog.Attr {
	if c == nil {
		return slog.Attr{}
	}
	return slog.String("constraint", c.String())
}

// Path records a property path under the key "path".
func Path(p fmt.Stringer) slog.Attr {
	if p == nil {
		return slog.Attr{}
	}
	return slog.String("path", p.String())
}

// Type records the dynamic type of v under the key "type".
func Type(v any) slog.Attr {
	if t, ok := v.(reflect.Type); ok {
		return slog.String("type", t.String())
	}
	if v == nil {
		return slog.String("type", "nil")
	}
	return slog.String("type", reflect.TypeOf(v).String())
}

// Violations records a violation count under the key "violations".
func Violations(n int) slog.Attr {
	return slog.Int("violations", n)
}

// Locale records the locale under the key "locale".
// An empty locale returns an empty Attr.
func Locale(locale string) slog.Attr {
	if locale == "" {
		return slog.Attr{}
	}
	return slog.String("locale", locale)
}

// Key records a message key under the key "key".
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

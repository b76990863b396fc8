// Package rules provides the built-in constraint kinds: descriptor
// constructors, the validator units checking them and their default messages.
//
//	reg := constraint.NewRegistry()
//	if err := rules.Register(reg, rules.WithCacheSize(128)); err != nil {
//		return err
//	}
//
//	book := metadata.Describe[Book]("Book").
//		Property("title", func(b Book) any { return b.Title }, rules.NotBlank(), rules.Size(1, 200)).
//		Property("isbn", func(b Book) any { return b.ISBN }, rules.Pattern(`[0-9-]{10,17}`)).
//		Property("pages", func(b Book) any { return b.Pages }, rules.Expression("value % 2 == 0"))
//
// Null values pass every kind except not_null, not_blank and not_empty, and
// empty strings pass the format kinds (email, url, uuid). Combine them with
// not_blank to require a value.
//
// Kinds are dispatched by value type: size accepts strings (counted in runes),
// slices, arrays and maps; min, max and the sign kinds accept every numeric
// kind, comparing integers exactly; past and future accept time.Time.
// A constraint declared on a value no unit accepts is not applied.
//
// pattern matches the whole string. expression is a CEL program over the
// variable "value" that must evaluate to a bool. tag delegates to
// go-playground/validator. Compiled patterns and programs are cached.
package rules

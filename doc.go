// Package validation validates Go values against declared constraint
// metadata.
//
// Metadata is registered up front with package metadata and describes, per
// bean type, the constraints on the bean itself, on its properties, on the
// elements of container-typed properties and on method and constructor
// signatures. A Validator walks a value along that metadata, runs the
// matching validator units from package constraint and collects every
// failure as a Violation with a structured path and a localised message.
//
//	v, err := validation.New(validation.WithMetadata(BookMeta, AuthorMeta))
//	if err != nil {
//		return err // unresolvable constraints are reported here
//	}
//	violations, err := v.Validate(ctx, book)
//	if err != nil {
//		return err // *ConfigurationError or *ExecutionError
//	}
//	for _, violation := range violations {
//		fmt.Println(violation) // authors[1]<list element>: must not be blank
//	}
//
// # Traversal
//
// Cascaded elements (metadata.Valid) are followed into nested beans and
// container elements. Every reference-typed value is validated at most once
// per call and metadata, so cyclic object graphs terminate and shared nodes
// are reported once. Nil values are only seen by units registered for any
// type, which makes nil valid for every built-in rule except not_null,
// not_blank and not_empty.
//
// # Executable validation
//
// ValidateParameters and ValidateReturnValue check method and constructor
// signatures. Futures (*async.Future) and streams (*broadcast.Stream) in
// parameter or return position cannot be validated up front; when their
// element type is constrained they are replaced by wrappers that validate
// each value when it arrives and fail with Violations.
//
// # Messages
//
// Message templates reference attributes ("{min}"), bundle keys
// ("{validation.not_blank}") and the validated value ("{validatedValue}").
// English and German messages for the built-in rules are always available;
// WithMessages layers application bundles on top. The locale of a call is
// taken from WithCallLocale, then from i18n.SetLocale on the context, then
// from the Validator default.
//
// # Errors
//
// Violations are results, not errors. The error return carries developer
// mistakes (*ConfigurationError, ErrMissingMetadata, ErrUnknownProperty and
// the like) and unexpected unit failures (*ExecutionError).
package validation

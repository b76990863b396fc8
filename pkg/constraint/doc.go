// Package constraint maps constraint kinds to the validator units that check
// them.
//
// Several units may serve one kind. Each is registered with a Target
// describing the values it accepts, and the most specific matching target
// wins:
//
//	TypeOf[T]()          exact type T (or *T)
//	Kinds(kinds...)      reflect kinds, e.g. every string or every slice
//	Implements[I]()      types implementing interface I
//	Any()                every value; the only target consulted for nil
//
// Two matching units of the same rank are a configuration error
// (ErrAmbiguousValidator). A value no unit accepts is not checked by that
// constraint at all, while a kind without any unit, named override or
// Resolver result fails with ErrNoValidator.
//
//	reg := constraint.NewRegistry()
//	_ = constraint.RegisterFunc(reg, "not_blank", func(s string, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
//		return strings.TrimSpace(s) != "", nil
//	})
//
// Units receive a Context for the check. Calling DisableDefaultViolation
// and BuildViolation replaces the descriptor's message with custom ones:
//
//	c.DisableDefaultViolation()
//	c.BuildViolation("{validation.range}").AtProperty("end").WithParameter("start", start).Add()
//
// Registration happens at startup. The first lookup seals the registry and
// resolutions are cached per kind and value type.
package constraint

// Package path models the structural location of a constraint violation inside
// an object graph or a method signature.
//
// A Path is an ordered, immutable sequence of Node values. Traversal code
// extends a path with Append (or one of the helper methods) which always
// returns a copy, so a child path never changes what its parent or siblings
// observe. Paths render to the canonical string used in violation messages:
//
//	authors[1]<list element>
//	sectionStartPages[]<map key>
//	startHoliday.person
//	getBook.<return value>.title
//
// # Rendering rules
//
//   - Named segments (property, method, constructor, parameter, return value,
//     cross-parameter) are joined with a dot.
//   - Bean nodes mark class-level constraints and render nothing.
//   - Container element nodes render their index or key in brackets directly
//     after the owning segment. Map keys render empty brackets because the key
//     itself is the invalid value.
//   - A container element that is not followed by a property segment gets a
//     marker describing its position, e.g. "<list element>" or "<map value>".
package path

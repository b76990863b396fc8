// Package metadata describes which elements of a type are validated and how.
//
// Metadata is produced ahead of time by plain Go code instead of being
// discovered through reflection over struct tags. Each property is declared
// with a typed getter, so reading a value never inspects unknown types:
//
//	var BookMeta = metadata.Describe[Book]("Book").
//		Property("title", func(b Book) any { return b.Title }, rules.NotBlank()).
//		Property("authors", func(b Book) any { return b.Authors },
//			rules.NotEmpty(),
//			metadata.Elements(rules.NotBlank()),
//		).
//		Property("sectionStartPages", func(b Book) any { return b.SectionStartPages },
//			metadata.Keys(rules.NotBlank()),
//			metadata.Values(rules.Positive()),
//		).
//		Property("publisher", func(b Book) any { return b.Publisher }, metadata.Valid()).
//		Build()
//
// Descriptors are options themselves. Valid marks a property as cascaded:
// beans are validated against their own metadata and containers pass the
// cascade on to their elements (map values for maps). Elements, Keys and
// Values attach metadata to container type arguments and nest to describe
// containers of containers up to MaxTypeArgumentDepth levels.
//
// Method and constructor signatures are described with NewMethod and
// NewConstructor and attached to a bean:
//
//	metadata.Describe[HolidayService]("HolidayService").
//		Method(metadata.NewMethod("startHoliday").
//			Param("person", rules.NotBlank()).
//			Param("duration", rules.Pattern(`^\d+d$`))).
//		Build()
//
// A Registry is the lookup side: it maps Go types (pointers resolve to their
// element type) to beans. All metadata is immutable after Build and safe to
// share between goroutines.
package metadata

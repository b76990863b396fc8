// Package i18n provides message bundles used to localise constraint violation
// messages.
//
// A Bundle is loaded once from a TranslationAdapter and is read-only
// afterwards, so it is safe for concurrent use. Ready-made adapters cover
// in-memory maps, single files, directories of any fs.FS (including embed.FS
// and os.DirFS) and merges of several adapters where later sources override
// earlier ones key by key.
//
// Message files are YAML or JSON documents grouped by language:
//
//	en:
//	  validation:
//	    not_blank: "must not be blank"
//	    min: "must be greater than or equal to {value}"
//	de:
//	  validation:
//	    not_blank: "darf nicht leer sein"
//
// Keys are resolved flat first ("validation.not_blank" as a literal key) and
// then by walking nested groups. Locales are matched with golang.org/x/text/language,
// so "en-US" resolves to "en" when only "en" is available, and anything
// unknown falls back to the default language.
//
// # Usage
//
//	bundle, err := i18n.NewBundle(ctx,
//		i18n.NewMultiAdapter(rules.Messages(), i18n.NewFileAdapter(nil, "./messages.yaml")),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	msg, ok := bundle.Lookup("de-AT", "validation.not_blank")
//	// msg == "darf nicht leer sein", ok == true
//
// Bundle implements interpolate.MessageSource.
//
// # Locale in context
//
// SetLocale and GetLocale carry the caller's locale through a context.Context.
package i18n

package rules

import (
	"embed"

	"github.com/dmitrymomot/validation/pkg/i18n"
)

//go:embed messages/*.yaml
var messages embed.FS

// Messages returns the default English and German messages for the built-in
// kinds, keyed "validation.<kind>".
func Messages() i18n.TranslationAdapter {
	return i18n.NewFSAdapter(messages, "messages")
}

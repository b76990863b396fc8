package i18n

import (
	"io"
	"log/slog"
)

// Option is a function that configures a Bundle instance.
type Option func(*Bundle)

// WithDefaultLanguage sets the default language for the bundle.
// This language is used when no locale is requested,
// or when the requested locale is not available.
func WithDefaultLanguage(lang string) Option {
	return func(b *Bundle) {
		if lang != "" {
			b.defaultLang = lang
		}
	}
}

// WithLogger provides a customizable logger for the bundle.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMissingMessagesLogging controls whether missing messages
// are logged. Default is false to avoid excessive logging.
func WithMissingMessagesLogging(log bool) Option {
	return func(b *Bundle) {
		b.missingLogMode = log
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(b *Bundle) {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		b.missingLogMode = false
	}
}

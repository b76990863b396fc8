package validation

import (
	"log/slog"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/extract"
	"github.com/dmitrymomot/validation/pkg/i18n"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/rules"
)

// Option configures a Validator.
type Option func(*options)

type options struct {
	beans      []*metadata.Bean
	register   []func(*constraint.Registry) error
	resolver   constraint.Resolver
	extractors []extract.Extractor
	messages   []i18n.TranslationAdapter
	ruleOpts   []rules.Option
	locale     string
	logger     *slog.Logger
	cacheSize  int
	logMissing bool
}

// WithMetadata registers bean metadata. May be given several times.
func WithMetadata(beans ...*metadata.Bean) Option {
	return func(o *options) {
		o.beans = append(o.beans, beans...)
	}
}

// WithConstraints registers custom validator units next to the built-in
// ones. Each function is called once while the Validator is built.
func WithConstraints(register ...func(reg *constraint.Registry) error) Option {
	return func(o *options) {
		for _, fn := range register {
			if fn != nil {
				o.register = append(o.register, fn)
			}
		}
	}
}

// WithResolver supplies validator units for kinds nothing was registered
// for and for named overrides, e.g. from a dependency injection container.
func WithResolver(r constraint.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithRuleOptions configures the built-in rules.
func WithRuleOptions(opts ...rules.Option) Option {
	return func(o *options) {
		o.ruleOpts = append(o.ruleOpts, opts...)
	}
}

// WithExtractors registers value extractors consulted before the built-in ones.
func WithExtractors(extractors ...extract.Extractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithMessages layers message bundles over the built-in messages.
// Later adapters override earlier ones key by key.
func WithMessages(adapters ...i18n.TranslationAdapter) Option {
	return func(o *options) {
		o.messages = append(o.messages, adapters...)
	}
}

// WithLocale sets the default locale messages are rendered in.
func WithLocale(locale string) Option {
	return func(o *options) {
		if locale != "" {
			o.locale = locale
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCacheSize bounds the compiled pattern and expression caches.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithMissingMessageLogging logs a warning for every message key the
// bundles cannot resolve.
func WithMissingMessageLogging(enabled bool) Option {
	return func(o *options) { o.logMissing = enabled }
}

// CallOption configures a single validation call.
type CallOption func(*callConfig)

// PropertyFilter decides whether a property of bean is traversed.
// Returning false skips the property's constraints and cascade.
type PropertyFilter func(bean any, property string) bool

type callConfig struct {
	groups []string
	filter PropertyFilter
	locale string
}

// WithGroups validates only constraints of the given groups.
// Without it the default group is validated.
func WithGroups(groups ...string) CallOption {
	return func(c *callConfig) {
		c.groups = append(c.groups, groups...)
	}
}

func WithPropertyFilter(f PropertyFilter) CallOption {
	return func(c *callConfig) { c.filter = f }
}

// WithCallLocale renders the messages of this call in locale. It takes
// precedence over a locale stored in the context with i18n.SetLocale.
func WithCallLocale(locale string) CallOption {
	return func(c *callConfig) { c.locale = locale }
}

package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/hashicorp/go-multierror"

	"github.com/dmitrymomot/validation/pkg/cache"
	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/extract"
	"github.com/dmitrymomot/validation/pkg/i18n"
	"github.com/dmitrymomot/validation/pkg/interpolate"
	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/rules"
)

// Validator validates beans, single properties and executable parameters
// and return values against registered metadata. It is immutable after New
// and safe for concurrent use.
type Validator struct {
	beans        *metadata.Registry
	constraints  *constraint.Registry
	extractors   *extract.Registry
	bundle       *i18n.Bundle
	interpolator *interpolate.Interpolator
	locale       string
	logger       *slog.Logger
}

// New builds a Validator. The built-in rules and their messages are always
// registered. Every descriptor in the registered metadata must resolve to a
// validator unit; all unresolvable ones are reported together.
func New(opts ...Option) (*Validator, error) {
	o := options{
		locale:    i18n.DefaultLanguage,
		logger:    logger.Discard(),
		cacheSize: cache.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With(logger.Component("validation"))

	beans, err := metadata.NewRegistry(o.beans...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	var regOpts []constraint.Option
	if o.resolver != nil {
		regOpts = append(regOpts, constraint.WithResolver(o.resolver))
	}
	constraints := constraint.NewRegistry(regOpts...)
	ruleOpts := append([]rules.Option{rules.WithCacheSize(o.cacheSize)}, o.ruleOpts...)
	if err := rules.Register(constraints, ruleOpts...); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	for _, register := range o.register {
		if err := register(constraints); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
	}

	extractors, err := extract.NewRegistry(o.extractors...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	adapters := append([]i18n.TranslationAdapter{rules.Messages()}, o.messages...)
	bundle, err := i18n.NewBundle(context.Background(), i18n.NewMultiAdapter(adapters...),
		i18n.WithDefaultLanguage(o.locale),
		i18n.WithLogger(log),
		i18n.WithMissingMessagesLogging(o.logMissing),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	v := &Validator{
		beans:        beans,
		constraints:  constraints,
		extractors:   extractors,
		bundle:       bundle,
		interpolator: interpolate.New(bundle),
		locale:       o.locale,
		logger:       log,
	}
	if err := v.check(); err != nil {
		return nil, err
	}
	return v, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validation: %v", err))
	}
	return v
}

// check resolves every registered descriptor once. It also seals the
// constraint registry.
func (v *Validator) check() error {
	var result *multierror.Error
	for _, b := range v.beans.Beans() {
		for _, d := range b.AllConstraints() {
			if err := v.constraints.Check(d); err != nil {
				result = multierror.Append(result, &ConfigurationError{
					Type:    b.Type(),
					Element: d.String(),
					Err:     err,
				})
			}
		}
	}
	v.constraints.Seal()
	return result.ErrorOrNil()
}

// Messages returns the message bundle used for interpolation.
func (v *Validator) Messages() *i18n.Bundle { return v.bundle }

// Interpolate renders template the way violation messages are rendered.
func (v *Validator) Interpolate(template string, attrs map[string]any, locale string) string {
	if locale == "" {
		locale = v.locale
	}
	return v.interpolator.Interpolate(template, attrs, locale)
}

// Metadata returns the bean metadata registered for t.
func (v *Validator) Metadata(t reflect.Type) (*metadata.Bean, bool) {
	return v.beans.Lookup(t)
}

func (v *Validator) callLocale(ctx context.Context, cfg callConfig) string {
	if cfg.locale != "" {
		return cfg.locale
	}
	if locale, ok := i18n.LocaleFromContext(ctx); ok {
		return locale
	}
	return v.locale
}

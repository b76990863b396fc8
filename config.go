package validation

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/validation/pkg/i18n"
	"github.com/dmitrymomot/validation/pkg/logger"
)

// Config holds the environment-driven settings of a Validator.
type Config struct {
	DefaultLocale      string `env:"VALIDATION_DEFAULT_LOCALE" envDefault:"en"`
	MessagesPath       string `env:"VALIDATION_MESSAGES_PATH"`
	LogMissingMessages bool   `env:"VALIDATION_LOG_MISSING_MESSAGES" envDefault:"false"`
	CacheSize          int    `env:"VALIDATION_CACHE_SIZE" envDefault:"256"`
	LogLevel           string `env:"VALIDATION_LOG_LEVEL" envDefault:"warn"`
	LogFormat          string `env:"VALIDATION_LOG_FORMAT" envDefault:"json"`
}

var defaultEnvLoaded sync.Once

// LoadConfig reads Config from the environment. A .env file in the working
// directory is loaded on the first call if present.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// NewFromConfig builds a Validator from cfg. opts are applied after the
// settings derived from cfg and override them.
func NewFromConfig(cfg Config, opts ...Option) (*Validator, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithContextExtractors(localeAttr),
	)

	base := []Option{
		WithLogger(log),
		WithLocale(cfg.DefaultLocale),
		WithCacheSize(cfg.CacheSize),
		WithMissingMessageLogging(cfg.LogMissingMessages),
	}
	if cfg.MessagesPath != "" {
		adapter, err := i18n.NewPathAdapter(cfg.MessagesPath)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		base = append(base, WithMessages(adapter))
	}

	return New(append(base, opts...)...)
}

func localeAttr(ctx context.Context) (slog.Attr, bool) {
	locale, ok := i18n.LocaleFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Locale(locale), true
}

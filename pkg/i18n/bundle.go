package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Bundle is an immutable set of messages grouped by language.
type Bundle struct {
	messages       map[string]map[string]any
	defaultLang    string
	missingLogMode bool
	logger         *slog.Logger

	matcher  language.Matcher
	matchTo  []string
	resolved sync.Map // requested locale -> bundle language
}

// NewBundle loads messages from the adapter and prepares locale matching.
func NewBundle(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Bundle, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	b := &Bundle{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(b)
	}

	messages, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	b.messages = messages
	b.buildMatcher()
	b.logger.InfoContext(ctx, "Message bundle loaded", "languages", b.Languages())
	return b, nil
}

func validateMessages(messages map[string]map[string]any) error {
	for lang, m := range messages {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if m == nil {
			return fmt.Errorf("%w: %s", ErrNilLanguageMessages, lang)
		}
	}
	return nil
}

// buildMatcher puts the default language first so the matcher falls back to it.
func (b *Bundle) buildMatcher() {
	var tags []language.Tag
	add := func(lang string) {
		tag, err := language.Parse(lang)
		if err != nil {
			return
		}
		tags = append(tags, tag)
		b.matchTo = append(b.matchTo, lang)
	}

	if _, ok := b.messages[b.defaultLang]; ok {
		add(b.defaultLang)
	}
	for _, lang := range b.Languages() {
		if lang != b.defaultLang {
			add(lang)
		}
	}
	if len(tags) > 0 {
		b.matcher = language.NewMatcher(tags)
	}
}

// Languages returns the sorted language codes present in the bundle.
func (b *Bundle) Languages() []string {
	langs := make([]string, 0, len(b.messages))
	for lang := range b.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the language used when a locale cannot be matched.
func (b *Bundle) DefaultLanguage() string {
	return b.defaultLang
}

// Resolve maps a requested locale to a language present in the bundle.
// Unknown locales resolve to the default language.
func (b *Bundle) Resolve(locale string) string {
	if locale == "" {
		return b.defaultLang
	}
	if _, ok := b.messages[locale]; ok {
		return locale
	}
	if lang, ok := b.resolved.Load(locale); ok {
		return lang.(string)
	}

	lang := b.defaultLang
	if b.matcher != nil {
		if tag, err := language.Parse(locale); err == nil {
			_, index, confidence := b.matcher.Match(tag)
			if confidence != language.No {
				lang = b.matchTo[index]
			}
		}
	}
	b.resolved.Store(locale, lang)
	return lang
}

// Lookup returns the message for key in the given locale, falling back to
// the default language. It implements interpolate.MessageSource.
func (b *Bundle) Lookup(locale, key string) (string, bool) {
	lang := b.Resolve(locale)
	if msg, ok := b.lookupLang(lang, key); ok {
		return msg, true
	}
	if lang != b.defaultLang {
		if msg, ok := b.lookupLang(b.defaultLang, key); ok {
			return msg, true
		}
	}

	if b.missingLogMode {
		b.logger.Warn("Message not found", "locale", locale, "language", lang, "key", key)
	}
	return "", false
}

// Has reports whether key resolves in the given locale.
func (b *Bundle) Has(locale, key string) bool {
	_, ok := b.lookupLang(b.Resolve(locale), key)
	return ok
}

func (b *Bundle) lookupLang(lang, key string) (string, bool) {
	m, ok := b.messages[lang]
	if !ok {
		return "", false
	}
	if v, ok := m[key]; ok {
		s, isString := v.(string)
		return s, isString
	}
	return getNested(m, key)
}

// getNested traverses a nested map using dot-separated keys.
// For example, key "validation.size.min" will traverse m["validation"] then ["size"] then ["min"].
func getNested(m map[string]any, key string) (string, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, isString := val.(string)
			return s, isString
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

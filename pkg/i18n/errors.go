package i18n

import "errors"

// Package errors use descriptive messages for debugging while avoiding implementation details.
// Context cancellation errors are separated to allow proper error handling in timeouts.
var (
	// Parsing
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrInvalidStructure  = errors.New("i18n: messages must be grouped by language")
	ErrUnsupportedFormat = errors.New("i18n: unsupported message file format")

	// Loading
	ErrNilAdapter          = errors.New("i18n: adapter is nil")
	ErrLoadingCancelled    = errors.New("i18n: loading messages cancelled")
	ErrFailedToReadFile    = errors.New("i18n: failed to read message file")
	ErrFailedToParseFile   = errors.New("i18n: failed to parse message file")
	ErrFailedToReadDir     = errors.New("i18n: failed to read message directory")
	ErrNoMessageFiles      = errors.New("i18n: no message files found")
	ErrEmptyLanguageCode   = errors.New("i18n: empty language code")
	ErrNilLanguageMessages = errors.New("i18n: nil messages for language")
)

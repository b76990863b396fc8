// Package logger builds the slog loggers used across the validation engine.
//
// New creates a *slog.Logger configured by Option functions: output format,
// minimum level, static attributes and ContextExtractor callbacks that inject
// request-scoped values (such as the active locale) into every record.
// Attributes given at the call site win over extracted ones with the same key.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithTextFormatter(),
//		logger.WithAttr(logger.Component("validation")),
//	)
//
//	log.WarnContext(ctx, "constraint skipped",
//		logger.Constraint(descriptor),
//		logger.Path(p),
//		logger.Type(value),
//	)
//
// ParseLevel and ParseFormat turn configuration strings into options.
// The default logger writes JSON at warn level to stderr; Discard drops everything.
//
// Attribute helpers return an empty slog.Attr for nil inputs, so they can be
// passed unconditionally:
//
//	log.Error("validation aborted", logger.Error(err))
package logger

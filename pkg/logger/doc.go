// Package logger builds configured log/slog loggers for the varycache
// toolkit.
//
// It provides functional options for level, format (JSON or text), output
// destination, static attributes, and context extractors. Extractors run
// on every log record and inject request-scoped attributes (such as the
// request ID) from the context, keeping call sites free of plumbing.
//
// # Usage
//
//	log := logger.New(
//		logger.WithProduction("varycache-demo"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "started")
//
// An invalid format passed to WithFormat panics: logging misconfiguration
// should stop startup, not surface in production output.
package logger

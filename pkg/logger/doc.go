// Package logger builds *slog.Logger values the same way everywhere in
// formkit: one factory, New, configured with functional options, plus a set of
// attribute helpers so keys stay consistent across packages.
//
// Options select the output format (text or json), the level, static
// attributes, and ContextExtractor callbacks. The handler returned by slog is
// wrapped in LogHandlerDecorator, which runs the extractors on every record so
// request-scoped values (for example a request id stored by middleware) end up
// in the log line without passing loggers around.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, "formkit"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.DebugContext(ctx, "field element not found",
//		logger.Form("register_form"),
//		logger.Field("username"),
//	)
//
// Libraries (formvalidate, tablefilter) default to Nop so they stay silent
// unless a logger is supplied.
//
// Error returns an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger

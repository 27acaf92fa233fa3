// Package logger builds log/slog loggers and keeps attribute names consistent.
//
// New creates a *slog.Logger from Option values: output format (text or json),
// minimum level, output writer and static attributes. WithDevelopment and
// WithProduction apply sensible presets. Discard returns a logger that drops
// everything, used as the default by the client packages.
//
//	log := logger.New(logger.WithDevelopment("storefront"))
//	log.Debug("bundle loaded", logger.Language("cs"), logger.Keys(120))
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger

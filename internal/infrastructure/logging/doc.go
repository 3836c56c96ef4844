// Package logging provides structured logging using uber/zap.
//
// LOG_DEV selects the mode: sampled JSON tagged with the service name by
// default, or an unsampled colored console for local work.
//
// Components take a *zap.Logger and name themselves with Named, so log
// lines read "window", "vfs", "kvstore.disk" and so on. Request-scoped
// loggers travel in the context (WithContext / FromContext).
//
// Example Usage:
//
//	logger := logging.FromConfig(cfg.Logging)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Backend put failed", zap.Error(err))
package logging

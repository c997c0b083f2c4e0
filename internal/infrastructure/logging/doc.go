// Package logging provides structured logging for msiecd.
//
// It wraps the standard library log/slog with configuration-driven
// level filtering, output format selection (JSON or text), and default
// service/version attributes on every record.
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("profile resolved", "firmware", fw, "model", p.Name)
package logging

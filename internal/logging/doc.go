// Package logging provides structured logging with per-module log levels.
//
// Loggers are created per module and cached:
//
//	logger := logging.GetLogger("caps")
//	logger.Info("Capabilities loaded", "platform", "cannonlake")
//
// Initialize applies a global level, an output format and per-module
// overrides. Loggers obtained before Initialize pick up the new levels
// because every module owns a slog.LevelVar:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"caps": "debug",
//			"dump": "warn",
//		},
//	})
//
// Records go to stdout when it is connected to a terminal, pipe, socket or
// file, and to the systemd journal when journald is running. Both are used
// through a MultiHandler when available. Journal entries carry the
// identifier "mediacaps" and upper-cased attribute keys:
//
//	journalctl -t mediacaps MODULE=caps PLATFORM=cannonlake
//
// SetModuleLevel changes a module level at runtime, for example from the
// HTTP API or after a configuration reload.
package logging

// Package logging provides structured logging with per-module log levels.
//
// Records go to stdout when something reads it, to the systemd journal
// when journald is present, and always to an in-memory history that backs
// the logs endpoint and the log event stream.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"publication": "debug",
//			"api":         "warn",
//		},
//	})
//
// and get a logger per module:
//
//	logger := logging.GetLogger("store")
//	logger.Info("egress created", "id", id)
//
// Loggers obtained before Initialize keep working and follow the
// configured level afterwards. SetModuleLevel changes one module's level
// at runtime.
//
// Journal entries carry the identifier "relaycoder":
//
//	journalctl -t relaycoder -f
//	journalctl -t relaycoder MODULE=publication
//
// The TOML form of the configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	publication = "debug"
package logging

// Package logging provides a structured logging system for bundlecheck with
// unified log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog
// package, providing consistent logging behavior with structured output.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about validation runs
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage
//
//	import "bundlecheck/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Bundle", "Loaded manifest from %s", manifestPath)
//	logging.Debug("Resolver", "Resolved %s to %s", ref, path)
//	logging.Warn("Transport", "Server %s uses deprecated sse transport", name)
//	logging.Error("Validator", err, "Validation run aborted")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Bundle**: Manifest location, parsing, and shape detection
//   - **Resolver**: Component reference resolution and header parsing
//   - **Transport**: Server configuration and transport rule checks
//   - **Validator**: Pipeline orchestration and worker pool activity
//   - **Watch**: Filesystem watching and re-validation cycles
//   - **MCP**: Serve-mode tool registration and invocation
//
// Commands log to stderr so stdout stays reserved for reports.
package logging

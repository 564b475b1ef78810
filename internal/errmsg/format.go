// Package errmsg provides consistent error formatting for log messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Boundary operations
	OpDecodeText   Op = "decode C string"
	OpInitialize   Op = "initialize worker"
	OpSendCommand  Op = "deliver play command"
	OpParseURI     Op = "parse track URI"
	OpLoadConfig   Op = "load configuration"
	OpSetupLogging Op = "set up logging"

	// Session operations
	OpSessionLogin Op = "log in to Spotify"

	// Playback operations
	OpPlaybackLoad Op = "load track"

	// History operations
	OpHistoryOpen   Op = "open play history"
	OpHistoryRecord Op = "record play history"
)

// Format creates a consistent error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

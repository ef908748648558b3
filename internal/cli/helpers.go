package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/witgo/internal/logging"
)

// createLogger configures the application logger. In debug mode it writes
// to stderr so log lines stay out of the conversation flow on stdout.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

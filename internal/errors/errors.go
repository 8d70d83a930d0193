// Package errors is the caretend CLI's failure surface. Commands
// return plain errors; the entrypoint funnels them through Fatal so
// the caregiver sees one tidy line on stderr while the full detail
// lands in the log file for later digging.
package errors

import (
	"fmt"
	"os"

	"github.com/caretend/caretend/internal/logger"
)

// Fatal logs the error, prints it, and exits non-zero. A nil error is
// a no-op so callers can pass results through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// Fatalf is Fatal with formatting.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}

package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/timegrid/internal/export"
	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/keyring"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/timetable"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors the user can act on, or returns "".
func Hint(err error) string {
	var validationErr *timetable.ValidationError
	var layoutErr *grid.LayoutError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return "run 'timegrid validate' to list every problem in the timetable"
	case errors.As(err, &layoutErr):
		return fmt.Sprintf("check the row and column spans of cells above and to the left of %s", layoutErr.Day)
	case errors.Is(err, export.ErrEmbeddedCredentials):
		return "remove the password and use ~/.pgpass, PGPASSWORD or 'timegrid keyring set'"
	case errors.Is(err, keyring.ErrNotFound):
		return "store a connection string with 'timegrid keyring set' or pass --dsn"
	case errors.Is(err, keyring.ErrUnavailable):
		return "set TIMEGRID_DB_CONNECTION instead of using the OS keyring"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Package commands contains the CLI command implementations.
//
// Every Run function takes its collaborators and an output writer as arguments so it
// can be tested without a database or a terminal.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/idvault/internal/app"
)

// Output formats accepted by commands with a --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// validateFormat rejects anything other than FormatText or FormatJSON.
func validateFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format %q: use %q or %q", format, FormatText, FormatJSON)
	}
	return nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(writer io.Writer, v any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

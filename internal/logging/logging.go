// =============================================================================
// Product ETL - Logging
// =============================================================================
//
// Builds the leveled, structured logger shared by the CLI and the pipeline.
// Pipeline packages depend only on the small printf-style Logger interface
// they declare; *log.Logger satisfies it.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every log line.
const Prefix = "productetl"

// New creates a logger writing to w at the named level
// ("debug", "info", "warn" or "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// Discard returns a logger that drops everything. Used by tests and dry runs
// that must stay quiet.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

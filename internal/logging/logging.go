// Package logging builds the diagnostic logger shared by the CLI and the TUI.
package logging

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.WarnLevel

var (
	// ErrInvalidLevel indicates a level name that ParseLevel does not know.
	ErrInvalidLevel = errors.New("invalid log level")
	// ErrInvalidFormat indicates a format name that ParseFormatter does not know.
	ErrInvalidFormat = errors.New("invalid log format")
)

// ValidLevels are the level names accepted in config files and flags.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats are the formatter names accepted in config files.
var ValidFormats = []string{"text", "json", "logfmt"}

// Options configures a logger.
type Options struct {
	Level     log.Level
	Formatter log.Formatter
	// Prefix is printed before every message. Defaults to "tl".
	Prefix string
}

// New returns a logger writing to w. A nil writer means stderr.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "tl"
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		Prefix:          prefix,
		ReportTimestamp: opts.Level == log.DebugLevel,
	})
}

// FromStrings builds a logger from config-style level and format names.
func FromStrings(w io.Writer, level, format string) *log.Logger {
	return New(w, Options{
		Level:     ParseLevel(level),
		Formatter: ParseFormatter(format),
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name. Unknown or empty names yield DefaultLevel.
func ParseLevel(level string) log.Level {
	switch internalstrings.NormalizeLowerTrimSpace(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return DefaultLevel
	}
}

// ParseFormatter parses a formatter name. Unknown or empty names yield text.
func ParseFormatter(format string) log.Formatter {
	switch internalstrings.NormalizeLowerTrimSpace(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Validate reports whether level and format are known names. Empty values
// are allowed and mean the defaults.
func Validate(level, format string) error {
	if value := internalstrings.NormalizeLowerTrimSpace(level); value != "" && value != "warning" && !contains(ValidLevels, value) {
		return validation.FormatInvalidValueError(ErrInvalidLevel, level, ValidLevels)
	}
	if value := internalstrings.NormalizeLowerTrimSpace(format); value != "" && !contains(ValidFormats, value) {
		return validation.FormatInvalidValueError(ErrInvalidFormat, format, ValidFormats)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

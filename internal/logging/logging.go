// Package logging builds the zerolog logger used by the tasks command.
package logging

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/validation"
)

// DefaultLevel keeps routine output quiet; storage fallbacks still show.
const DefaultLevel = "warn"

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ValidLevels returns the accepted level names.
func ValidLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "disabled"}
}

// ParseLevel normalizes and validates a level name. Empty means DefaultLevel.
func ParseLevel(value string) (zerolog.Level, error) {
	name := internalstrings.NormalizeLowerTrimSpace(value)
	if name == "" {
		name = DefaultLevel
	}
	if !validation.OneOf(name, ValidLevels()) {
		return zerolog.NoLevel, validation.FormatInvalidValueError(ErrInvalidLevel, value, ValidLevels())
	}
	return zerolog.ParseLevel(name)
}

// New returns a logger writing to w at level. Terminals get zerolog's console
// format; anything else gets one JSON object per line.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if isTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

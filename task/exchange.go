package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/validation"
)

// Format is an export file format.
type Format string

const (
	// FormatJSON is the storage array, indented.
	FormatJSON Format = "json"

	// FormatYAML is a YAML sequence of task mappings.
	FormatYAML Format = "yaml"
)

// ErrInvalidFormat is returned for an unknown export format.
var ErrInvalidFormat = errors.New("invalid format")

// ValidFormats returns the supported export formats.
func ValidFormats() []Format {
	return []Format{FormatJSON, FormatYAML}
}

// ParseFormat normalizes and validates a format name. Empty means JSON.
func ParseFormat(value string) (Format, error) {
	f := Format(internalstrings.NormalizeLowerTrimSpace(value))
	switch f {
	case "":
		return FormatJSON, nil
	case "yml":
		return FormatYAML, nil
	}
	if !validation.OneOf(f, ValidFormats()) {
		return "", validation.FormatInvalidValueError(ErrInvalidFormat, Format(value), ValidFormats())
	}
	return f, nil
}

// Encode writes tasks to w in format.
func Encode(w io.Writer, tasks []Task, format Format) error {
	if tasks == nil {
		tasks = []Task{}
	}
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// Decode reads a task list from r in format.
func Decode(r io.Reader, format Format) ([]Task, error) {
	var tasks []Task
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&tasks); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&tasks); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return tasks, nil
}

// PrepareImport re-validates imported records as if each were saved by hand:
// titles are trimmed, due dates normalized and priorities recomputed as of
// now. Records without an ID get one from newID. The first invalid record
// aborts the import.
func PrepareImport(records []Task, now time.Time, newID func() string) ([]Task, error) {
	prepared := make([]Task, 0, len(records))
	for i, record := range records {
		t, err := Prepare(DraftFrom(record), now, newID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		prepared = append(prepared, t)
	}
	return prepared, nil
}

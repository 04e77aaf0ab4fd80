// Package editor opens task forms in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"
	"golang.org/x/term"
)

// DefaultEditor runs when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vi"

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Command returns the editor invocation for path. $VISUAL wins over $EDITOR,
// and either may carry arguments, as in "code --wait".
func Command(path string) (*exec.Cmd, error) {
	value := os.Getenv("VISUAL")
	if value == "" {
		value = os.Getenv("EDITOR")
	}
	if value == "" {
		value = DefaultEditor
	}

	words, err := shellwords.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("parse editor %q: %w", value, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("parse editor %q: empty command", value)
	}

	cmd := exec.Command(words[0], append(words[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Edit opens path in the editor and waits for it to exit.
func Edit(path string) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// EditContent writes content to a temporary file named after pattern, opens
// it in the editor and returns the saved text.
func EditContent(content, pattern string) (string, error) {
	tmpfile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(edited), nil
}

package editor

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	cases := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "visual wins", visual: "code --wait", editor: "nano", want: []string{"code", "--wait", "/tmp/t.md"}},
		{name: "editor", editor: "nano", want: []string{"nano", "/tmp/t.md"}},
		{name: "quoted path", editor: `'/opt/my editor/bin/ed' -w`, want: []string{"/opt/my editor/bin/ed", "-w", "/tmp/t.md"}},
		{name: "fallback", want: []string{DefaultEditor, "/tmp/t.md"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISUAL", tc.visual)
			t.Setenv("EDITOR", tc.editor)

			cmd, err := Command("/tmp/t.md")
			if err != nil {
				t.Fatalf("Command: %v", err)
			}
			if strings.Join(cmd.Args, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("expected args %q, got %q", tc.want, cmd.Args)
			}
		})
	}
}

func TestCommandRejectsUnbalancedQuotes(t *testing.T) {
	t.Setenv("VISUAL", `"vim`)
	if _, err := Command("/tmp/t.md"); err == nil {
		t.Fatal("expected parse error")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestEditContentReturnsSavedText(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", writeScript(t, `printf 'segunda linha\n' >> "$1"`))

	got, err := EditContent("primeira linha\n", "tasks-*.md")
	if err != nil {
		t.Fatalf("EditContent: %v", err)
	}
	if got != "primeira linha\nsegunda linha\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestEditReportsExitStatus(t *testing.T) {
	t.Setenv("VISUAL", writeScript(t, "exit 3"))

	err := Edit(filepath.Join(t.TempDir(), "t.md"))
	if err == nil || !strings.Contains(err.Error(), "status 3") {
		t.Fatalf("expected exit status error, got %v", err)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"

	"github.com/amonks/tasks/internal/testsupport"
	"github.com/amonks/tasks/task"
)

const fakeEditorScript = `#!/bin/sh
cat > "$1" <<'TOML'
title = "Pagar conta"
due = "2026-03-10 12:00"
estimate = 30
priority = ""
---
Boleto do **aluguel**
TOML
`

func interactiveEnv(home, editorPath string) []string {
	env := make([]string, 0, len(os.Environ())+4)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "TASKS_") || name == "NO_COLOR" || name == "CI" || name == "TERM" || name == "VISUAL" || name == "HOME" || name == "EDITOR" {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "HOME="+home, "EDITOR="+editorPath, "TERM=xterm-256color", "TZ=UTC")
}

// readTerminal collects what the child writes to the terminal until it
// exits. The background color query sent at startup is answered with a bare
// cursor position report, which termenv reads as "unsupported".
func readTerminal(t *testing.T, ptmx *os.File) string {
	t.Helper()
	var output bytes.Buffer
	answered := false
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		output.Write(buf[:n])
		if !answered && bytes.Contains(output.Bytes(), []byte("\x1b[6n")) {
			answered = true
			if _, werr := ptmx.Write([]byte("\x1b[1;1R")); werr != nil {
				t.Fatalf("answer cursor query: %v", werr)
			}
		}
		// The master reports EIO once the child exits.
		if err != nil {
			return output.String()
		}
	}
}

func TestAddOpensEditorOnTerminal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a unix pty")
	}
	binary := testsupport.BuildTasks(t)

	home := t.TempDir()
	if err := testsupport.EnsureHomeDirs(home); err != nil {
		t.Fatalf("setup home: %v", err)
	}
	editorPath := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(editorPath, []byte(fakeEditorScript), 0o755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	env := interactiveEnv(home, editorPath)

	cmd := exec.Command(binary, "--now", "2026-03-10T10:00:00Z", "add")
	cmd.Env = env
	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("start under pty: %v", err)
	}
	defer ptmx.Close()
	started := time.Now()

	output := readTerminal(t, ptmx)
	if err := cmd.Wait(); err != nil {
		t.Fatalf("tasks add: %v\n%s", err, output)
	}

	if !strings.Contains(output, "\x1b[1;") {
		t.Fatalf("expected colored output on a terminal, got %q", output)
	}
	if elapsed := time.Since(started); elapsed > 4*time.Second {
		t.Fatalf("expected the terminal query to be answered promptly, took %s", elapsed)
	}
	plain := ansi.Strip(output)
	if !strings.Contains(plain, "Created task") || !strings.Contains(plain, "Pagar conta [HIGH]") {
		t.Fatalf("unexpected output %q", plain)
	}

	list := exec.Command(binary, "--now", "2026-03-10T10:00:00Z", "list", "--json")
	list.Env = env
	listed, err := list.Output()
	if err != nil {
		t.Fatalf("tasks list: %v", err)
	}
	if strings.Contains(string(listed), "\x1b[") {
		t.Fatalf("expected plain output when not on a terminal")
	}

	var tasks []task.Task
	if err := json.Unmarshal(listed, &tasks); err != nil {
		t.Fatalf("parse list: %v\n%s", err, listed)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Pagar conta" || got.Priority != task.PriorityHigh {
		t.Fatalf("unexpected task %+v", got)
	}
	if got.Estimate() != 30 {
		t.Fatalf("expected estimate 30, got %d", got.Estimate())
	}
	if got.ExpireAt == nil || *got.ExpireAt != "2026-03-10T12:00:00Z" {
		t.Fatalf("expected normalized due date, got %v", got.ExpireAt)
	}
	if got.DescriptionText() != "Boleto do **aluguel**" {
		t.Fatalf("unexpected description %q", got.DescriptionText())
	}
}

package listflags

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestAddFilterFlag(t *testing.T) {
	var filter string
	cmd := &cobra.Command{Use: "list"}
	AddFilterFlag(cmd, &filter)

	if err := cmd.ParseFlags([]string{"-f", "high"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if filter != "high" {
		t.Fatalf("expected high, got %q", filter)
	}
	if usage := cmd.Flags().Lookup("filter").Usage; !strings.Contains(usage, "all, high, medium, low") {
		t.Fatalf("expected valid filters in usage, got %q", usage)
	}
}

func TestAddPendingFlag(t *testing.T) {
	var pending bool
	cmd := &cobra.Command{Use: "list"}
	AddPendingFlag(cmd, &pending)

	if err := cmd.ParseFlags([]string{"--pending"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !pending {
		t.Fatal("expected pending to be set")
	}
}

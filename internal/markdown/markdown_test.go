package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func swapRenderer(t *testing.T, width int, r renderer) {
	t.Helper()

	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
		rendererMu.Unlock()
	})
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20
	swapRenderer(t, renderWidth, panicRenderer{})

	out := SafeRender(renderWidth, 0, []byte("pauta da reunião\n"))
	if string(out) != "pauta da reunião" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestSafeRender_Blank(t *testing.T) {
	for _, input := range []string{"", "  \n\t"} {
		if out := SafeRender(80, 2, []byte(input)); out != nil {
			t.Fatalf("expected nil for %q, got %q", input, out)
		}
	}
}

func TestSafeRender_FormatsList(t *testing.T) {
	out := string(SafeRender(60, 0, []byte("Levar:\n\n* boleto\n* comprovante\n")))
	if !strings.Contains(out, "- boleto") || !strings.Contains(out, "- comprovante") {
		t.Fatalf("expected list items, got %q", out)
	}
}

func TestSafeRender_Indents(t *testing.T) {
	out := string(SafeRender(60, 4, []byte("primeira linha")))
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "    ") {
			t.Fatalf("expected indented line, got %q", line)
		}
	}
	if !strings.Contains(out, "primeira linha") {
		t.Fatalf("expected text to survive, got %q", out)
	}
}

package tui

import (
	"strings"
	"testing"

	"todo-cli/internal/model"
)

func TestGlyphs_FromEnv(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("TODO_TUI_GLYPHS", "")
	setGlyphs(glyphSetASCII)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("TODO_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}

	// Unknown values are ignored (keep current).
	t.Setenv("TODO_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
}

func TestGlyphs_ASCIIRows(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })
	setGlyphs(glyphSetASCII)

	row := taskRow{task: model.Task{ID: "1", Text: strings.Repeat("w", 100)}, removing: true}
	out := renderRow(row, 40, true)
	for _, want := range []string{"> ", "...", "deleting..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in ascii row, got %q", want, out)
		}
	}
	if strings.ContainsAny(out, "›…") {
		t.Fatalf("expected no unicode glyphs, got %q", out)
	}
}

package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render the Unicode affordances (cursor, separators, ellipsis) poorly, so an
// ASCII set can be selected with TODO_TUI_GLYPHS=ascii.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODO_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return "> "
	}
	return "› "
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return " | "
	}
	return " · "
}

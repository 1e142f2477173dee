package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"todo-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style + wrap width. WithAutoStyle can block on terminal background queries, so a
	// fixed style is resolved up front and the renderer reused.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for a terminal of the given width. It falls back to the raw text when
// glamour fails.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderHelpModal(width int) string {
	md, ok := docs.Get("keys")
	if !ok {
		md = footerHelpList
	}
	body := RenderMarkdown(md, modalBodyWidth(width))
	help := styleMuted().Render("esc/?: close")
	return renderModalBox(width, "Help", body+"\n\n"+help)
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}
	applyMarkdownPalette(&cfg, styleName)
	return cfg
}

// markdownStyle follows the TUI theme preference so markdown never picks the dark palette on a
// light terminal.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODO_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if dark, ok := themePreference(os.Getenv); ok {
		if dark {
			return "dark"
		}
		return "light"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func applyMarkdownPalette(cfg *ansi.StyleConfig, styleName string) {
	headingColor := mdColor(colorSurfaceFg, styleName)
	cfg.Heading.Color = headingColor
	cfg.H1.Color = headingColor
	cfg.H2.Color = headingColor
	cfg.H3.Color = headingColor

	cfg.Code.Color = mdColor(colorAccent, styleName)
	cfg.CodeBlock.Color = mdColor(colorSurfaceFg, styleName)
	cfg.Text.Color = mdColor(colorSurfaceFg, styleName)

	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	if styleName == "light" {
		return &c.Light
	}
	return &c.Dark
}

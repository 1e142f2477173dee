package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The palette must stay readable on light and dark terminals, so colors are adaptive and
// "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    = ac("240", "243")
	colorBorder   = ac("250", "240")
	colorAccent   = ac("27", "62")
	colorAccentFg = ac("255", "235")

	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")
	colorControlBg = ac("252", "237")

	// Toast backgrounds, one per notice kind.
	colorSuccess  = ac("28", "29")
	colorWarning  = ac("172", "136")
	colorError    = ac("160", "124")
	colorOnStatus = ac("255", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
}

func styleButton() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true)
}

// styleButtonBusy is the disabled look of the submit control while an add is in flight.
func styleButtonBusy() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted).Background(colorControlBg))
}

// applyColorProfilePreference sets the color profile for the interactive TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can switch colors off inside a TUI, so
// only NO_COLOR is respected here and the terminal's capabilities decide the rest.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) TODO_TUI_THEME=light|dark|auto
// 2) TODO_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	if dark, ok := themePreference(os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
		return
	}
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// themePreference resolves the env-driven part of applyThemePreference. ok is false when nothing
// in the environment decides it.
func themePreference(getenv func(string) string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(getenv("TODO_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}

	if v := strings.TrimSpace(getenv("TODO_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}

	if v := strings.TrimSpace(getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
